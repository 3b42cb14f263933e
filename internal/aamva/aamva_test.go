package aamva

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaRegistries(t *testing.T) {
	simple := SimpleSchema()
	full := FullSchema()

	assert.Equal(t, 10, simple.Len())
	assert.Equal(t, 24, full.Len())

	// Full is a strict superset of simple, in the same leading order.
	for i, f := range simple.Fields() {
		assert.Equal(t, f, full.Fields()[i])
	}

	name, ok := simple.Name("DCS")
	require.True(t, ok)
	assert.Equal(t, "LastName", name)

	tag, ok := full.Tag("EyeColor")
	require.True(t, ok)
	assert.Equal(t, FieldTag("DAY"), tag)

	_, ok = simple.Name("DAY")
	assert.False(t, ok, "eye color is not in the simple registry")
}

func TestNewSchemaRejectsBadInput(t *testing.T) {
	_, err := NewSchema([]Field{{"DC", "Short"}})
	assert.Error(t, err)
	_, err = NewSchema([]Field{{"DCS", "A"}, {"DCS", "B"}})
	assert.Error(t, err)
	_, err = NewSchema([]Field{{"DCS", "A"}, {"DAC", "A"}})
	assert.Error(t, err)
}

func TestIsTag(t *testing.T) {
	assert.True(t, IsTag("DCS"))
	assert.True(t, IsTag("ZVZ"))
	assert.False(t, IsTag("DC1"))
	assert.False(t, IsTag("dcs"))
	assert.False(t, IsTag("DCSS"))
	assert.False(t, IsTag(""))
}

func TestParseBasic(t *testing.T) {
	record := Parse("DCSSMITH\nDACJOHN\nDBB01011990")
	assert.Equal(t, 3, record.Len())

	v, ok := record.Get("DCS")
	require.True(t, ok)
	assert.Equal(t, "SMITH", v)
	v, ok = record.Get("DAC")
	require.True(t, ok)
	assert.Equal(t, "JOHN", v)
	v, ok = record.Get("DBB")
	require.True(t, ok)
	assert.Equal(t, "01011990", v)
}

func TestParseTrimsAndSkips(t *testing.T) {
	record := Parse("DCS  SMITH  \nnot a field line\nx\nDAQ D12345678\n")
	assert.Equal(t, 2, record.Len())
	v, _ := record.Get("DCS")
	assert.Equal(t, "SMITH", v)
	v, _ = record.Get("DAQ")
	assert.Equal(t, "D12345678", v)
}

func TestParseUnknownTagPreserved(t *testing.T) {
	record := Parse("ZZZ999\nDCSDOE")
	assert.Equal(t, 2, record.Len())

	v, ok := record.Get("DCS")
	require.True(t, ok)
	assert.Equal(t, "DOE", v)
	v, ok = record.Get("ZZZ")
	require.True(t, ok)
	assert.Equal(t, "999", v)

	// The unknown tag reappears verbatim on re-serialize.
	out, err := Serialize(record, FullSchema(), SerializeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "DCSDOE\nZZZ999", out)
}

func TestParseEmptyPayload(t *testing.T) {
	record := Parse("no tags here at all")
	assert.Equal(t, 0, record.Len())
	record = Parse("")
	assert.Equal(t, 0, record.Len())
}

func TestParseDuplicateTagLatestWins(t *testing.T) {
	record := Parse("DCSFIRST\nDCSSECOND")
	assert.Equal(t, 1, record.Len())
	v, _ := record.Get("DCS")
	assert.Equal(t, "SECOND", v)
}

func TestParseValueWithEmbeddedTagText(t *testing.T) {
	// A value containing another tag's code must not be mis-segmented:
	// tags are only recognized at line starts.
	record := Parse("DAGDAQ STREET\nDCSSMITH")
	assert.Equal(t, 2, record.Len())
	v, _ := record.Get("DAG")
	assert.Equal(t, "DAQ STREET", v)
	_, ok := record.Get("DAQ")
	assert.False(t, ok)
}

func TestSerializeCanonicalOrder(t *testing.T) {
	record := NewRecord()
	record.Set("DBB", "01011990")
	record.Set("DCS", "SMITH")
	record.Set("DAC", "JOHN")

	out, err := Serialize(record, SimpleSchema(), SerializeOptions{})
	require.NoError(t, err)
	// Canonical order is schema order, not insertion order.
	assert.Equal(t, "DCSSMITH\nDACJOHN\nDBB01011990", out)
}

func TestSerializeRequiredFields(t *testing.T) {
	record := NewRecord()
	record.Set("DCS", "SMITH")

	_, err := Serialize(record, SimpleSchema(), SerializeOptions{
		Required: []FieldTag{"DCS", "DAQ"},
	})
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	out, err := Serialize(record, SimpleSchema(), SerializeOptions{
		Required: []FieldTag{"DCS"},
	})
	require.NoError(t, err)
	assert.Equal(t, "DCSSMITH", out)
}

func TestSerializeRejectsLineTerminators(t *testing.T) {
	record := NewRecord()
	record.Set("DAG", "123 MAIN\nAPT 4")
	_, err := Serialize(record, SimpleSchema(), SerializeOptions{})
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
}

func TestRoundTripRecord(t *testing.T) {
	record := NewRecord()
	record.Set("DCS", "SMITH")
	record.Set("DAC", "JOHN")
	record.Set("DAG", "123 MAIN ST")
	record.Set("ZVZ", "VENDOR DATA")

	out, err := Serialize(record, FullSchema(), SerializeOptions{})
	require.NoError(t, err)
	parsed := Parse(out)
	assert.True(t, record.Equal(parsed), "parse(serialize(r)) != r:\n%v\n%v",
		record.ToMap(FullSchema()), parsed.ToMap(FullSchema()))
}

func TestEnvelopeRoundTrip(t *testing.T) {
	record := NewRecord()
	record.Set("DAQ", "D12345678")
	record.Set("DCS", "SMITH")

	env := &Envelope{IssuerID: "636014", Version: 9}
	out, err := Serialize(record, FullSchema(), SerializeOptions{Envelope: env})
	require.NoError(t, err)
	assert.Contains(t, out, "@\n\x1e\rANSI 63601409")

	parsedEnv, ok := ParseEnvelope(out)
	require.True(t, ok)
	assert.Equal(t, "636014", parsedEnv.IssuerID)
	assert.Equal(t, 9, parsedEnv.Version)

	parsed := Parse(out)
	assert.True(t, record.Equal(parsed))
}

func TestParseBareEnvelopeIndicatorless(t *testing.T) {
	_, ok := ParseEnvelope("DCSSMITH")
	assert.False(t, ok)
}

func TestRecordMapBridge(t *testing.T) {
	values := map[string]string{
		"LastName":  "SMITH",
		"FirstName": "JOHN",
		"DOB":       "01011990",
		"ZVZ":       "OPAQUE",
	}
	record, err := FromMap(values, FullSchema())
	require.NoError(t, err)
	assert.Equal(t, 4, record.Len())

	back := record.ToMap(FullSchema())
	assert.Equal(t, values, back)

	_, err = FromMap(map[string]string{"NotAField": "x"}, FullSchema())
	assert.Error(t, err)
}

func TestFromMapRawTagForRegisteredField(t *testing.T) {
	record, err := FromMap(map[string]string{"DCS": "SMITH"}, FullSchema())
	require.NoError(t, err)
	v, ok := record.Get("DCS")
	require.True(t, ok)
	assert.Equal(t, "SMITH", v)
}
