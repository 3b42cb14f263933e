package aamva

import (
	"fmt"
	"strings"
)

// SerializeOptions controls strictness and framing of record output.
type SerializeOptions struct {
	// Required lists tags that must be present; an absent one fails with
	// ErrMissingRequiredField. Empty means any subset is acceptable.
	Required []FieldTag

	// Envelope, when non-nil, wraps the payload in the card-level header
	// and subfile directory.
	Envelope *Envelope
}

// Serialize emits one line per field present in the record: the tag
// immediately followed by the value. Registered fields come first in the
// schema's canonical order; unknown tags follow in insertion order.
// Values must not contain line terminators, which would mis-segment the
// payload on re-parse.
func Serialize(record *Record, schema Schema, opts SerializeOptions) (string, error) {
	for _, tag := range opts.Required {
		if _, ok := record.Get(tag); !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingRequiredField, tag)
		}
	}

	var lines []string
	emit := func(tag FieldTag, value string) error {
		if strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("%w: %s contains a line terminator", ErrInvalidFieldValue, tag)
		}
		lines = append(lines, string(tag)+value)
		return nil
	}

	for _, f := range schema.Fields() {
		if v, ok := record.Get(f.Tag); ok {
			if err := emit(f.Tag, v); err != nil {
				return "", err
			}
		}
	}
	for _, f := range record.fields {
		if _, registered := schema.Name(f.tag); registered {
			continue
		}
		if err := emit(f.tag, f.value); err != nil {
			return "", err
		}
	}

	payload := strings.Join(lines, "\n")
	if opts.Envelope != nil {
		return wrapEnvelope(payload, *opts.Envelope), nil
	}
	return payload, nil
}

// wrapEnvelope frames a serialized payload as a single-DL-subfile AAMVA
// file: compliance header, directory, subfile body, segment terminator.
func wrapEnvelope(payload string, env Envelope) string {
	issuer := env.IssuerID
	if len(issuer) < issuerIDLen {
		issuer = strings.Repeat("0", issuerIDLen-len(issuer)) + issuer
	}
	issuer = issuer[:issuerIDLen]
	body := subfileTypeDL + payload + segmentTerminator
	offset := directoryOffset + directoryLen
	var b strings.Builder
	b.WriteString(headerPrefix)
	b.WriteString(issuer)
	fmt.Fprintf(&b, "%02d", env.Version)
	b.WriteString("01") // one subfile entry
	fmt.Fprintf(&b, "%s%04d%04d", subfileTypeDL, offset, len(body))
	b.WriteString(body)
	return b.String()
}
