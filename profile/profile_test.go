package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/siegeai/schemascope/docvalue"
	"github.com/siegeai/schemascope/schemastat"
)

func TestObserveJSON(t *testing.T) {
	p := New()
	assert.Nil(t, p.ObserveJSON([]byte(`{"a": 1}`)))
	assert.Nil(t, p.ObserveJSON([]byte(`{"a": 2}`)))
	assert.Nil(t, p.ObserveJSON([]byte(`{"a": "x"}`)))

	schema := p.Finalize()
	assert.True(t, schema.Finalized())

	f, ok := schema.Field("a")
	assert.True(t, ok)
	assert.Equal(t, f.Count, 3)
	assert.Equal(t, f.Probability, 1.0)
	assert.Equal(t, *f.Unique, 3)
	assert.False(t, f.HasDuplicates)
}

func TestObserveJSONDecodeFailure(t *testing.T) {
	p := New()
	assert.NotNil(t, p.ObserveJSON([]byte(`{"a":`)))
	assert.Equal(t, p.Count(), 0)
}

func TestObserveBSON(t *testing.T) {
	p := New()

	bs, err := bson.Marshal(bson.D{{Key: "a", Value: int32(1)}})
	assert.Nil(t, err)
	assert.Nil(t, p.ObserveBSON(bs))

	schema := p.Finalize()
	f, ok := schema.Field("a")
	assert.True(t, ok)
	assert.Equal(t, f.Type, docvalue.LabelInt32)
}

func TestObserveMixedMismatchKeepsGoing(t *testing.T) {
	p := New()
	assert.Nil(t, p.ObserveJSON([]byte(`{"a": {"x": 1}, "b": 1}`)))

	err := p.ObserveJSON([]byte(`{"a": 9, "b": 2}`))
	var mismatch *schemastat.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)

	// the bad document still counted and its clean fields folded in
	assert.Equal(t, p.Count(), 2)
	schema := p.Finalize()
	b, _ := schema.Field("b")
	assert.Equal(t, b.Count, 2)
}

func TestObserveAfterFinalize(t *testing.T) {
	p := New()
	assert.Nil(t, p.ObserveJSON([]byte(`{"a": 1}`)))
	p.Finalize()

	err := p.ObserveJSON([]byte(`{"a": 2}`))
	assert.ErrorIs(t, err, schemastat.ErrFinalized)
}
