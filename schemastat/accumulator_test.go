package schemastat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siegeai/schemascope/docvalue"
)

func docWith(pairs ...docvalue.DocField) docvalue.Document {
	return docvalue.Document{Fields: pairs}
}

func field(key string, v docvalue.Value) docvalue.DocField {
	return docvalue.DocField{Key: key, Value: v}
}

func TestObserveConsistentField(t *testing.T) {
	a := NewAccumulator()
	for i := 0; i < 5; i++ {
		assert.Nil(t, a.ObserveDocument(docWith(field("f", docvalue.Int32(int32(i))))))
	}
	a.Finalize()

	f, ok := a.Field("f")
	assert.True(t, ok)
	assert.Equal(t, f.Count, 5)
	assert.Equal(t, f.Probability, 1.0)
}

func TestObservePartialField(t *testing.T) {
	a := NewAccumulator()
	assert.Nil(t, a.ObserveDocument(docWith(field("f", docvalue.Int32(1)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("g", docvalue.Int32(2)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("f", docvalue.Int32(3)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("g", docvalue.Int32(4)))))
	a.Finalize()

	f, _ := a.Field("f")
	g, _ := a.Field("g")
	assert.Equal(t, f.Probability, 0.5)
	assert.Equal(t, g.Probability, 0.5)
}

func TestObserveKeepsFirstSeenOrder(t *testing.T) {
	a := NewAccumulator()
	assert.Nil(t, a.ObserveDocument(docWith(field("b", docvalue.Int32(1)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("a", docvalue.Int32(2)), field("b", docvalue.Int32(3)))))

	fs := a.Fields()
	assert.Equal(t, len(fs), 2)
	assert.Equal(t, fs[0].Path, "b")
	assert.Equal(t, fs[1].Path, "a")
}

func TestObserveNestedDocuments(t *testing.T) {
	a := NewAccumulator()

	// the outer field appears in 2 of 4 documents; its sub-field appears in
	// both sub-documents, so the child probability is relative to 2, not 4
	sub1 := docWith(field("street", docvalue.String("Oranienstr.")))
	sub2 := docWith(field("street", docvalue.String("Hauptstr.")))

	assert.Nil(t, a.ObserveDocument(docWith(field("address", docvalue.Doc(sub1)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("name", docvalue.String("x")))))
	assert.Nil(t, a.ObserveDocument(docWith(field("address", docvalue.Doc(sub2)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("name", docvalue.String("y")))))
	a.Finalize()

	addr, ok := a.Field("address")
	assert.True(t, ok)
	assert.Equal(t, addr.Count, 2)
	assert.Equal(t, addr.Probability, 0.5)
	assert.NotNil(t, addr.Schema)
	assert.Equal(t, addr.Schema.Count(), 2)

	street, ok := addr.Schema.Field("address.street")
	assert.True(t, ok)
	assert.Equal(t, street.Count, 2)
	assert.Equal(t, street.Probability, 1.0)
	assert.NotNil(t, street.Unique)
	assert.Equal(t, *street.Unique, 2)
}

func TestObserveArrayFlattening(t *testing.T) {
	a := NewAccumulator()
	xs := docvalue.List(docvalue.Int32(1), docvalue.Int32(2), docvalue.Int32(3))
	assert.Nil(t, a.ObserveDocument(docWith(field("xs", xs))))
	a.Finalize()

	f, _ := a.Field("xs")
	assert.Equal(t, f.Type, docvalue.LabelArray)
	assert.Equal(t, len(f.Values), 3)
	assert.Equal(t, *f.Unique, 3)
	assert.False(t, f.HasDuplicates)
}

func TestObserveMismatchDoesNotAbortSiblings(t *testing.T) {
	a := NewAccumulator()

	sub := docWith(field("x", docvalue.Int32(1)))
	assert.Nil(t, a.ObserveDocument(docWith(field("a", docvalue.Doc(sub)), field("b", docvalue.Int32(1)))))

	err := a.ObserveDocument(docWith(field("a", docvalue.Int32(9)), field("b", docvalue.Int32(2))))
	assert.NotNil(t, err)

	var mismatch *TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)

	// the sibling still folded in and the level count still advanced
	b, _ := a.Field("b")
	assert.Equal(t, b.Count, 2)
	assert.Equal(t, a.Count(), 2)

	aa, _ := a.Field("a")
	assert.Equal(t, aa.Count, 1)
}

func TestObserveAfterFinalize(t *testing.T) {
	a := NewAccumulator()
	assert.Nil(t, a.ObserveDocument(docWith(field("f", docvalue.Int32(1)))))
	a.Finalize()
	assert.True(t, a.Finalized())

	err := a.ObserveDocument(docWith(field("f", docvalue.Int32(2))))
	assert.ErrorIs(t, err, ErrFinalized)
	assert.Equal(t, a.Count(), 1)
}

func TestFinalizeTwiceStable(t *testing.T) {
	a := NewAccumulator()
	assert.Nil(t, a.ObserveDocument(docWith(field("f", docvalue.Int32(1)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("f", docvalue.Int32(1)))))

	a.Finalize()
	f, _ := a.Field("f")
	p, u, d := f.Probability, *f.Unique, f.HasDuplicates

	a.Finalize()
	assert.Equal(t, f.Probability, p)
	assert.Equal(t, *f.Unique, u)
	assert.Equal(t, f.HasDuplicates, d)
}

func TestEndToEndHeterogeneousScalars(t *testing.T) {
	a := NewAccumulator()
	assert.Nil(t, a.ObserveDocument(docWith(field("a", docvalue.Int32(1)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("a", docvalue.Int32(2)))))
	assert.Nil(t, a.ObserveDocument(docWith(field("a", docvalue.String("x")))))
	a.Finalize()

	f, _ := a.Field("a")
	assert.Equal(t, f.Count, 3)
	assert.Equal(t, f.Probability, 1.0)
	assert.Equal(t, f.Type, docvalue.LabelInt32)
	assert.Equal(t, len(f.Values), 3)
	assert.Equal(t, *f.Unique, 3)
	assert.False(t, f.HasDuplicates)
}

func TestMarshalJSON(t *testing.T) {
	a := NewAccumulator()
	assert.Nil(t, a.ObserveDocument(docWith(field("a", docvalue.Int32(1)), field("b", docvalue.String("x")))))
	a.Finalize()

	bs, err := json.Marshal(a)
	assert.Nil(t, err)

	var out struct {
		Count  int `json:"count"`
		Fields []struct {
			Path          string            `json:"path"`
			Type          string            `json:"type"`
			Count         int               `json:"count"`
			Probability   float64           `json:"probability"`
			Values        []json.RawMessage `json:"values"`
			HasDuplicates bool              `json:"has_duplicates"`
			Unique        *int              `json:"unique"`
		} `json:"fields"`
	}
	assert.Nil(t, json.Unmarshal(bs, &out))
	assert.Equal(t, out.Count, 1)
	assert.Equal(t, len(out.Fields), 2)
	assert.Equal(t, out.Fields[0].Path, "a")
	assert.Equal(t, string(out.Fields[0].Values[0]), "1")
	assert.Equal(t, out.Fields[1].Path, "b")
	assert.Equal(t, string(out.Fields[1].Values[0]), `"x"`)
	assert.NotNil(t, out.Fields[0].Unique)
}
