package aamva

import (
	"errors"
	"sort"
)

// ErrMissingRequiredField is returned by Serialize when strict mode is
// enabled and a required field is absent from the record.
var ErrMissingRequiredField = errors.New("aamva: missing required field")

// ErrInvalidFieldValue is returned when a field value would corrupt the
// line-oriented payload framing.
var ErrInvalidFieldValue = errors.New("aamva: invalid field value")

// Record is an ordered set of tag/value pairs. Insertion order is kept
// for unknown-tag re-serialization fidelity; lookups are by tag. A tag
// appears at most once: Set replaces in place, so when a payload carries
// a duplicate tag the latest occurrence wins (matching the observed
// behavior of the original scanner).
type Record struct {
	fields []fieldValue
	index  map[FieldTag]int
}

type fieldValue struct {
	tag   FieldTag
	value string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{index: make(map[FieldTag]int)}
}

// Set stores value under tag, replacing any previous value while keeping
// the tag's original position.
func (r *Record) Set(tag FieldTag, value string) {
	if i, ok := r.index[tag]; ok {
		r.fields[i].value = value
		return
	}
	r.index[tag] = len(r.fields)
	r.fields = append(r.fields, fieldValue{tag: tag, value: value})
}

// Get returns the value stored under tag.
func (r *Record) Get(tag FieldTag) (string, bool) {
	i, ok := r.index[tag]
	if !ok {
		return "", false
	}
	return r.fields[i].value, true
}

// Len returns the number of fields in the record.
func (r *Record) Len() int { return len(r.fields) }

// Tags returns the record's tags in insertion order.
func (r *Record) Tags() []FieldTag {
	tags := make([]FieldTag, len(r.fields))
	for i, f := range r.fields {
		tags[i] = f.tag
	}
	return tags
}

// Equal reports whether two records hold the same tag/value mapping,
// regardless of insertion order.
func (r *Record) Equal(other *Record) bool {
	if r.Len() != other.Len() {
		return false
	}
	for _, f := range r.fields {
		v, ok := other.Get(f.tag)
		if !ok || v != f.value {
			return false
		}
	}
	return true
}

// ToMap renders the record as the caller-facing flat mapping: known tags
// appear under their semantic names, unknown tags under the raw tag.
func (r *Record) ToMap(schema Schema) map[string]string {
	out := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		key := string(f.tag)
		if name, ok := schema.Name(f.tag); ok {
			key = name
		}
		out[key] = f.value
	}
	return out
}

// FromMap builds a record from the caller-facing flat mapping. Keys are
// resolved as semantic names first, then accepted verbatim when they are
// tag-shaped; anything else is rejected.
func FromMap(values map[string]string, schema Schema) (*Record, error) {
	r := NewRecord()
	// Known fields first, in canonical order, so records built from maps
	// serialize deterministically.
	for _, f := range schema.Fields() {
		if v, ok := values[f.Name]; ok {
			r.Set(f.Tag, v)
		}
	}
	rest := make([]string, 0, len(values))
	for key := range values {
		if _, ok := schema.Tag(key); ok {
			continue
		}
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		if !IsTag(key) {
			return nil, errors.New("aamva: unknown field name " + key)
		}
		tag := FieldTag(key)
		if name, ok := schema.Name(tag); ok {
			// A raw tag for a registered field; the named key wins if
			// both are present.
			if _, named := values[name]; named {
				continue
			}
		}
		r.Set(tag, values[key])
	}
	return r, nil
}
