package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ahrimdon/pdf417-decoder/internal/aamva"
	"github.com/Ahrimdon/pdf417-decoder/internal/config"
	"github.com/Ahrimdon/pdf417-decoder/internal/pdf417"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
	s.writeJSON(w, http.StatusOK, response)
}

// decodeHandler turns a barcode payload or codeword matrix into a record.
func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.decodeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), "payload")
		return
	}

	input := "payload"
	if req.Matrix != nil {
		input = "matrix"
	}

	if (req.Payload == "") == (req.Matrix == nil) {
		s.decodeError(w, http.StatusBadRequest, "exactly one of payload and matrix must be set", input)
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = config.ModeFull
	}
	switch mode {
	case config.ModeRaw, config.ModeSimple, config.ModeFull:
	default:
		s.decodeError(w, http.StatusBadRequest, "unknown mode: "+mode, input)
		return
	}

	payload := req.Payload
	var symbol *SymbolInfo
	if req.Matrix != nil {
		result, err := pdf417.DecodeMatrix(req.Matrix)
		if err != nil {
			s.decodeError(w, http.StatusUnprocessableEntity, err.Error(), input)
			return
		}
		payload = string(result.Payload)
		symbol = &SymbolInfo{
			Rows:               result.Rows,
			Columns:            result.Columns,
			SecurityLevel:      result.SecurityLevel,
			CorrectedCodewords: result.CorrectedCodewords,
		}
		correctedCodewords.Observe(float64(result.CorrectedCodewords))
	}
	payloadSizeBytes.Observe(float64(len(payload)))

	resp := DecodeResponse{Success: true, Raw: payload, Symbol: symbol}
	if mode != config.ModeRaw {
		schema := aamva.FullSchema()
		if mode == config.ModeSimple {
			schema = aamva.SimpleSchema()
		}
		resp.Fields = aamva.Parse(payload).ToMap(schema)
		if env, ok := aamva.ParseEnvelope(payload); ok {
			resp.IssuerID = env.IssuerID
			resp.Version = env.Version
		}
	}

	decodeRequestsTotal.WithLabelValues(input, "success").Inc()
	s.writeJSON(w, http.StatusOK, resp)
}

// generateHandler builds a barcode payload and symbol matrix from record
// fields.
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.generateError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Fields) == 0 {
		s.generateError(w, http.StatusBadRequest, "fields must not be empty")
		return
	}

	schema := aamva.FullSchema()
	record, err := aamva.FromMap(req.Fields, schema)
	if err != nil {
		s.generateError(w, http.StatusBadRequest, err.Error())
		return
	}

	serOpts := aamva.SerializeOptions{}
	if req.Envelope {
		version := req.Version
		if version == 0 {
			version = 9
		}
		serOpts.Envelope = &aamva.Envelope{IssuerID: req.IssuerID, Version: version}
	}
	payload, err := aamva.Serialize(record, schema, serOpts)
	if err != nil {
		s.generateError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := pdf417.DefaultOptions()
	if req.Columns != nil {
		opts.Columns = *req.Columns
	}
	if req.SecurityLevel != nil {
		opts.SecurityLevel = *req.SecurityLevel
	}
	matrix, err := pdf417.Encode([]byte(payload), opts)
	if err != nil {
		s.generateError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	payloadSizeBytes.Observe(float64(len(payload)))

	generateRequestsTotal.WithLabelValues("success").Inc()
	s.writeJSON(w, http.StatusOK, GenerateResponse{Success: true, Payload: payload, Matrix: matrix})
}

func (s *Server) decodeError(w http.ResponseWriter, status int, msg, input string) {
	decodeRequestsTotal.WithLabelValues(input, "error").Inc()
	s.writeJSON(w, status, DecodeResponse{Success: false, Error: msg})
}

func (s *Server) generateError(w http.ResponseWriter, status int, msg string) {
	generateRequestsTotal.WithLabelValues("error").Inc()
	s.writeJSON(w, status, GenerateResponse{Success: false, Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
