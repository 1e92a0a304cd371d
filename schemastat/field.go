// Package schemastat accumulates a statistical schema from a stream of
// decoded documents. One Field per distinct path per nesting level tracks how
// often the field appeared, the scalar values it held, and, once finalized,
// its probability relative to the enclosing level and the uniqueness of its
// value pool. Document-valued fields own a child Accumulator and recurse.
package schemastat

import (
	"github.com/siegeai/schemascope/docvalue"
)

// Field is the per-path accumulator record.
//
// Type is the label of the first observed value and never changes afterwards.
// Values holds every scalar observation in order, array elements flattened in,
// nothing deduplicated until Finalize. Unique and HasDuplicates are only
// meaningful after Finalize; Probability is refreshed on every observation for
// inspection but is authoritative only once finalized.
type Field struct {
	Path          string                `json:"path"`
	Type          string                `json:"type"`
	Count         int                   `json:"count"`
	Probability   float64               `json:"probability"`
	Values        []docvalue.Normalized `json:"values,omitempty"`
	HasDuplicates bool                  `json:"has_duplicates"`
	Unique        *int                  `json:"unique,omitempty"`
	Schema        *Accumulator          `json:"schema,omitempty"`
}

// NewField records the first sighting of a path. A document value opens a
// child accumulator instead of entering the value pool.
func NewField(path string, v docvalue.Value) *Field {
	f := &Field{
		Path:  path,
		Type:  v.TypeLabel(),
		Count: 1,
	}
	if v.IsDocument() {
		f.Schema = newChildAccumulator(path)
		f.Schema.observe(v.AsDocument())
	} else {
		f.fold(v)
	}
	return f
}

// AddObservation folds one more sighting of the field into the record.
// parentCount is the number of documents the enclosing level had seen before
// this one. A container/scalar flip across documents is reported as a
// *TypeMismatchError and leaves the record untouched.
func (f *Field) AddObservation(v docvalue.Value, parentCount int) error {
	declaredDoc := f.Type == docvalue.LabelDocument
	if declaredDoc != v.IsDocument() {
		return &TypeMismatchError{Path: f.Path, Declared: f.Type, Observed: v.TypeLabel()}
	}

	f.Probability = float64(f.Count) / float64(parentCount)

	if declaredDoc {
		f.Schema.observe(v.AsDocument())
		f.Count++
		return nil
	}

	f.Count++
	f.fold(v)
	return nil
}

func (f *Field) fold(v docvalue.Value) {
	if v.IsArray() {
		f.Values = append(f.Values, docvalue.NormalizeElements(v.AsArray())...)
		return
	}
	if n, ok := docvalue.Normalize(v); ok {
		f.Values = append(f.Values, n)
	}
}

// Finalize computes the derived statistics against the level's final document
// count. Values keeps its observation order; uniqueness works on a copy.
// Calling Finalize again with the same parentCount changes nothing.
func (f *Field) Finalize(parentCount int) {
	f.Probability = float64(f.Count) / float64(parentCount)

	unique := docvalue.UniqueCount(f.Values)
	f.Unique = &unique
	f.HasDuplicates = len(f.Values)-unique != 0

	if f.Schema != nil {
		f.Schema.Finalize()
	}
}
