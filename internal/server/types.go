package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Ahrimdon/pdf417-decoder/internal/config"
	"github.com/Ahrimdon/pdf417-decoder/internal/pdf417"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	cfg    config.ServerConfig
	logger *slog.Logger
}

// DecodeRequest carries the input for /v1/decode. Exactly one of Payload
// and Matrix must be set: Payload is an already-extracted barcode byte
// stream, Matrix is a codeword grid still needing error correction and
// decompaction.
type DecodeRequest struct {
	Payload string               `json:"payload,omitempty"`
	Matrix  *pdf417.SymbolMatrix `json:"matrix,omitempty"`
	Mode    string               `json:"mode,omitempty"`
}

// SymbolInfo reports geometry recovered from a decoded matrix.
type SymbolInfo struct {
	Rows               int `json:"rows"`
	Columns            int `json:"columns"`
	SecurityLevel      int `json:"security_level"`
	CorrectedCodewords int `json:"corrected_codewords"`
}

type DecodeResponse struct {
	Success  bool              `json:"success"`
	Raw      string            `json:"raw,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	IssuerID string            `json:"issuer_id,omitempty"`
	Version  int               `json:"version,omitempty"`
	Symbol   *SymbolInfo       `json:"symbol,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// GenerateRequest carries the input for /v1/generate. Fields maps field
// names (or raw three-letter tags) to values; unset options fall back to
// the server's generation defaults.
type GenerateRequest struct {
	Fields        map[string]string `json:"fields"`
	Columns       *int              `json:"columns,omitempty"`
	SecurityLevel *int              `json:"security_level,omitempty"`
	Envelope      bool              `json:"envelope,omitempty"`
	IssuerID      string            `json:"issuer_id,omitempty"`
	Version       int               `json:"version,omitempty"`
}

type GenerateResponse struct {
	Success bool                 `json:"success"`
	Payload string               `json:"payload,omitempty"`
	Matrix  *pdf417.SymbolMatrix `json:"matrix,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// NewServer creates a new API server instance.
func NewServer(cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, logger: logger}
}

// Addr returns the listen address from the server configuration.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.logMiddleware(s.healthHandler))
	mux.HandleFunc("/v1/decode", s.logMiddleware(s.decodeHandler))
	mux.HandleFunc("/v1/generate", s.logMiddleware(s.generateHandler))
	mux.Handle("/metrics", promhttp.Handler())
}
