package aamva

import (
	"fmt"
	"strconv"
	"strings"
)

// Envelope framing constants per the AAMVA card design standard.
const (
	complianceIndicator = "@"
	recordSeparator     = "\x1e"
	segmentTerminator   = "\r"
	fileType            = "ANSI "
	subfileTypeDL       = "DL"

	headerPrefix    = complianceIndicator + "\n" + recordSeparator + segmentTerminator + fileType
	issuerIDLen     = 6
	versionLen      = 2
	entryCountLen   = 2
	directoryLen    = 10 // subfile type (2) + offset (4) + length (4)
	directoryOffset = len(headerPrefix) + issuerIDLen + versionLen + entryCountLen
)

// Envelope is the card-level framing around one or more subfiles.
type Envelope struct {
	IssuerID string // 6-digit issuer identification number
	Version  int    // AAMVA standard version
}

// Parse scans a barcode payload for tagged fields. A field is recognized
// only at the start of a line: the first three characters form the tag,
// the rest of the line (trimmed) is the value. Registered and unknown
// tags alike are kept; lines that do not start with a tag-shaped prefix
// are skipped. A payload with no recognizable fields yields an empty
// record, not an error, since a partial scan may still carry usable data.
func Parse(payload string) *Record {
	body := payload
	if env, subfiles, err := splitEnvelope(payload); err == nil && env != nil {
		body = strings.Join(subfiles, "\n")
	}

	record := NewRecord()
	for _, line := range strings.FieldsFunc(body, isLineBreak) {
		if len(line) < 3 {
			continue
		}
		tag := line[:3]
		if !IsTag(tag) {
			continue
		}
		record.Set(FieldTag(tag), strings.TrimSpace(line[3:]))
	}
	return record
}

// ParseEnvelope returns the envelope framing of a payload, if present.
func ParseEnvelope(payload string) (*Envelope, bool) {
	env, _, err := splitEnvelope(payload)
	if err != nil || env == nil {
		return nil, false
	}
	return env, true
}

func isLineBreak(r rune) bool { return r == '\n' || r == '\r' }

// splitEnvelope extracts the header and subfile bodies from an enveloped
// payload. It returns a nil envelope for bare payloads with no compliance
// indicator.
func splitEnvelope(payload string) (*Envelope, []string, error) {
	if !strings.HasPrefix(payload, complianceIndicator) {
		return nil, nil, nil
	}
	if !strings.HasPrefix(payload, headerPrefix) {
		return nil, nil, fmt.Errorf("aamva: malformed envelope header")
	}
	rest := payload[len(headerPrefix):]
	if len(rest) < issuerIDLen+versionLen+entryCountLen {
		return nil, nil, fmt.Errorf("aamva: truncated envelope header")
	}
	env := &Envelope{IssuerID: rest[:issuerIDLen]}
	version, err := strconv.Atoi(rest[issuerIDLen : issuerIDLen+versionLen])
	if err != nil {
		return nil, nil, fmt.Errorf("aamva: bad envelope version: %w", err)
	}
	env.Version = version
	entries, err := strconv.Atoi(rest[issuerIDLen+versionLen : issuerIDLen+versionLen+entryCountLen])
	if err != nil || entries < 1 {
		return nil, nil, fmt.Errorf("aamva: bad envelope entry count")
	}

	var subfiles []string
	for i := range entries {
		at := directoryOffset + i*directoryLen
		if at+directoryLen > len(payload) {
			return nil, nil, fmt.Errorf("aamva: truncated subfile directory")
		}
		entry := payload[at : at+directoryLen]
		offset, errOff := strconv.Atoi(entry[2:6])
		length, errLen := strconv.Atoi(entry[6:10])
		if errOff != nil || errLen != nil || offset+length > len(payload) {
			return nil, nil, fmt.Errorf("aamva: bad subfile directory entry %q", entry)
		}
		body := payload[offset : offset+length]
		// The subfile body repeats its two-character type, then the
		// first element follows immediately.
		body = strings.TrimPrefix(body, entry[:2])
		body = strings.TrimSuffix(body, segmentTerminator)
		subfiles = append(subfiles, body)
	}
	return env, subfiles, nil
}
