// Package aamva implements the AAMVA driver-license record codec: the
// mapping between three-character field tags and semantic field names,
// line-oriented payload parsing and serialization, and the envelope
// framing that wraps a record on a physical card.
package aamva

import "fmt"

// FieldTag is a three-character AAMVA data element identifier, e.g. "DCS".
type FieldTag string

// Field pairs a tag with its semantic name.
type Field struct {
	Tag  FieldTag
	Name string
}

// Schema is an immutable tag registry. It decides which tags map to
// readable field names and fixes the canonical serialization order.
// Unknown tags are never errors; they round-trip as opaque pairs.
type Schema struct {
	fields []Field
	byTag  map[FieldTag]string
	byName map[string]FieldTag
}

// simpleFields is the minimal registry: the name/address/license-number
// class of fields.
var simpleFields = []Field{
	{"DCS", "LastName"},
	{"DAC", "FirstName"},
	{"DAD", "MiddleName"},
	{"DBB", "DOB"},
	{"DBA", "ExpirationDate"},
	{"DAQ", "LicenseNumber"},
	{"DAG", "Address"},
	{"DAI", "City"},
	{"DAJ", "State"},
	{"DAK", "ZipCode"},
}

// fullFields extends the simple registry with every known tag.
var fullFields = append(append([]Field(nil), simpleFields...),
	Field{"DAY", "EyeColor"},
	Field{"DAU", "Height"},
	Field{"DBC", "Sex"},
	Field{"DCG", "Country"},
	Field{"DBD", "IssueDate"},
	Field{"DCF", "DocumentDiscriminator"},
	Field{"DCK", "InventoryControlNumber"},
	Field{"DDE", "ComplianceType"},
	Field{"DDF", "CardRevisionDate"},
	Field{"DDG", "HazmatEndorsement"},
	Field{"DDH", "LimitedTermIndicator"},
	Field{"DCU", "NameSuffix"},
	Field{"DDC", "MedicalIndicator"},
	Field{"DDD", "NonResidentIndicator"},
)

// NewSchema builds a schema from an ordered field list. The input order
// becomes the canonical serialization order.
func NewSchema(fields []Field) (Schema, error) {
	s := Schema{
		fields: append([]Field(nil), fields...),
		byTag:  make(map[FieldTag]string, len(fields)),
		byName: make(map[string]FieldTag, len(fields)),
	}
	for _, f := range fields {
		if !IsTag(string(f.Tag)) {
			return Schema{}, fmt.Errorf("aamva: invalid tag %q", f.Tag)
		}
		if _, dup := s.byTag[f.Tag]; dup {
			return Schema{}, fmt.Errorf("aamva: duplicate tag %q", f.Tag)
		}
		if _, dup := s.byName[f.Name]; dup {
			return Schema{}, fmt.Errorf("aamva: duplicate field name %q", f.Name)
		}
		s.byTag[f.Tag] = f.Name
		s.byName[f.Name] = f.Tag
	}
	return s, nil
}

func mustSchema(fields []Field) Schema {
	s, err := NewSchema(fields)
	if err != nil {
		panic(err)
	}
	return s
}

var (
	simpleSchema = mustSchema(simpleFields)
	fullSchema   = mustSchema(fullFields)
)

// SimpleSchema returns the minimal registry (name, address and license
// number class fields).
func SimpleSchema() Schema { return simpleSchema }

// FullSchema returns the complete registry, a superset of SimpleSchema.
func FullSchema() Schema { return fullSchema }

// Name returns the semantic name for a tag.
func (s Schema) Name(tag FieldTag) (string, bool) {
	name, ok := s.byTag[tag]
	return name, ok
}

// Tag returns the tag registered for a semantic name.
func (s Schema) Tag(name string) (FieldTag, bool) {
	tag, ok := s.byName[name]
	return tag, ok
}

// Fields returns the registered fields in canonical order.
func (s Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Len returns the number of registered tags.
func (s Schema) Len() int { return len(s.fields) }

// IsTag reports whether v has the shape of an AAMVA data element
// identifier: exactly three uppercase letters.
func IsTag(v string) bool {
	if len(v) != 3 {
		return false
	}
	for i := range 3 {
		if v[i] < 'A' || v[i] > 'Z' {
			return false
		}
	}
	return true
}
