package docvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJSONEmpty(t *testing.T) {
	d, err := ParseJSON([]byte("{}"))
	assert.Nil(t, err)
	assert.Equal(t, len(d.Fields), 0)
}

func TestParseJSONScalars(t *testing.T) {
	d, err := ParseJSON([]byte(`{"s": "hi", "i": 1, "l": 5000000000, "f": 1.5, "b": true, "n": null}`))
	assert.Nil(t, err)
	assert.Equal(t, len(d.Fields), 6)
	assert.Equal(t, d.Fields[0].Value.Kind(), KindString)
	assert.Equal(t, d.Fields[1].Value.Kind(), KindInt32)
	assert.Equal(t, d.Fields[2].Value.Kind(), KindInt64)
	assert.Equal(t, d.Fields[3].Value.Kind(), KindDouble)
	assert.Equal(t, d.Fields[4].Value.Kind(), KindBoolean)
	assert.Equal(t, d.Fields[5].Value.Kind(), KindNull)
}

func TestParseJSONNested(t *testing.T) {
	d, err := ParseJSON([]byte(`{"a": {"b": 1}, "c": [1, 2, 3]}`))
	assert.Nil(t, err)
	assert.Equal(t, len(d.Fields), 2)

	assert.True(t, d.Fields[0].Value.IsDocument())
	sub := d.Fields[0].Value.AsDocument()
	assert.Equal(t, sub.Fields[0].Key, "b")

	assert.True(t, d.Fields[1].Value.IsArray())
	assert.Equal(t, len(d.Fields[1].Value.AsArray()), 3)
}

func TestParseJSONExtended(t *testing.T) {
	d, err := ParseJSON([]byte(`{
		"id": {"$oid": "5a9427648b0beebeb69579e7"},
		"price": {"$numberDecimal": "9.99"},
		"n": {"$numberLong": "42"},
		"at": {"$date": "2023-05-01T12:30:00Z"},
		"re": {"$regularExpression": {"pattern": "^a", "options": "i"}},
		"sym": {"$symbol": "sigil"}
	}`))
	assert.Nil(t, err)
	assert.Equal(t, len(d.Fields), 6)
	assert.Equal(t, d.Fields[0].Value.Kind(), KindObjectID)
	assert.Equal(t, d.Fields[1].Value.Kind(), KindDecimal128)
	assert.Equal(t, d.Fields[2].Value.Kind(), KindInt64)
	assert.Equal(t, d.Fields[3].Value.Kind(), KindDatetime)
	assert.Equal(t, d.Fields[4].Value.Kind(), KindRegex)
	assert.Equal(t, d.Fields[5].Value.Kind(), KindSymbol)
}

func TestParseJSONUnknownDollarKeyIsOrdinary(t *testing.T) {
	d, err := ParseJSON([]byte(`{"a": {"$weird": 1}}`))
	assert.Nil(t, err)
	assert.True(t, d.Fields[0].Value.IsDocument())
}

func TestParseJSONTopLevelNotObject(t *testing.T) {
	_, err := ParseJSON([]byte(`[1, 2]`))
	assert.NotNil(t, err)
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON([]byte(`{"a":`))
	assert.NotNil(t, err)
}
