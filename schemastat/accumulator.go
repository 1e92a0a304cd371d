package schemastat

import (
	"encoding/json"
	"errors"

	"github.com/siegeai/schemascope/docvalue"
)

// ErrFinalized is returned when a document is observed after Finalize.
var ErrFinalized = errors.New("accumulator is finalized")

// Accumulator aggregates field records for one document container level. The
// top level is one Accumulator; every document-valued field owns another one.
// Lifecycle is observe-then-finalize: feed documents with ObserveDocument,
// then call Finalize exactly once (extra calls are harmless no-ops).
type Accumulator struct {
	prefix    string
	fields    map[string]*Field
	order     []string
	count     int
	finalized bool
}

func NewAccumulator() *Accumulator {
	return &Accumulator{fields: make(map[string]*Field)}
}

func newChildAccumulator(prefix string) *Accumulator {
	a := NewAccumulator()
	a.prefix = prefix
	return a
}

// Count is the number of documents observed at this level. It is the
// denominator for every field's probability here.
func (a *Accumulator) Count() int { return a.count }

// Finalized reports whether the accumulator has transitioned out of the
// accumulating state.
func (a *Accumulator) Finalized() bool { return a.finalized }

// Fields returns the records in the order their paths first appeared.
func (a *Accumulator) Fields() []*Field {
	res := make([]*Field, len(a.order))
	for i, p := range a.order {
		res[i] = a.fields[p]
	}
	return res
}

// Field looks up a record by its full path.
func (a *Accumulator) Field(path string) (*Field, bool) {
	f, ok := a.fields[path]
	return f, ok
}

// ObserveDocument folds one document into the level. A field whose kind flips
// between container and scalar yields a *TypeMismatchError, but its siblings
// still process; all field errors come back joined.
func (a *Accumulator) ObserveDocument(doc docvalue.Document) error {
	if a.finalized {
		return ErrFinalized
	}
	return a.observe(doc)
}

func (a *Accumulator) observe(doc docvalue.Document) error {
	prev := a.count
	a.count++

	var errs []error
	for _, df := range doc.Fields {
		path := a.childPath(df.Key)
		if f, ok := a.fields[path]; ok {
			if err := f.AddObservation(df.Value, prev); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		a.fields[path] = NewField(path, df.Value)
		a.order = append(a.order, path)
	}
	return errors.Join(errs...)
}

func (a *Accumulator) childPath(key string) string {
	if a.prefix == "" {
		return key
	}
	return a.prefix + "." + key
}

// Finalize computes derived statistics for every record, recursively, against
// this level's document count. Records are independent; order does not matter.
func (a *Accumulator) Finalize() {
	for _, f := range a.fields {
		f.Finalize(a.count)
	}
	a.finalized = true
}

func (a *Accumulator) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count  int      `json:"count"`
		Fields []*Field `json:"fields"`
	}{
		Count:  a.count,
		Fields: a.Fields(),
	})
}
