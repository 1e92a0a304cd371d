// Package profile drives schema accumulation across a stream of documents
// and hands out the finalized result.
package profile

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/siegeai/schemascope/docvalue"
	"github.com/siegeai/schemascope/schemastat"
)

// Profiler owns one top-level accumulator. Feed it documents with one of the
// Observe methods, then call Finalize; observations after that fail with
// schemastat.ErrFinalized. Not safe for concurrent use; callers sharding
// documents across profilers must merge results themselves.
type Profiler struct {
	ID  uuid.UUID
	acc *schemastat.Accumulator
}

func New() *Profiler {
	return &Profiler{
		ID:  uuid.New(),
		acc: schemastat.NewAccumulator(),
	}
}

// Observe folds one decoded document into the schema. Per-field type
// mismatches are logged and reported, but sibling fields and later documents
// still process.
func (p *Profiler) Observe(doc docvalue.Document) error {
	err := p.acc.ObserveDocument(doc)
	if errors.Is(err, schemastat.ErrFinalized) {
		return err
	}
	documentsObserved.Inc()
	if err != nil {
		documentsRejected.Inc()
		slog.Warn("document partially observed", "profiler", p.ID, "err", err)
	}
	return err
}

// ObserveJSON decodes one JSON document and folds it in.
func (p *Profiler) ObserveJSON(b []byte) error {
	doc, err := docvalue.ParseJSON(b)
	if err != nil {
		decodeFailures.Inc()
		return err
	}
	return p.Observe(doc)
}

// ObserveBSON decodes one raw BSON document and folds it in.
func (p *Profiler) ObserveBSON(b []byte) error {
	doc, err := docvalue.ParseBSON(b)
	if err != nil {
		decodeFailures.Inc()
		return err
	}
	return p.Observe(doc)
}

// Count is the number of documents observed so far.
func (p *Profiler) Count() int {
	return p.acc.Count()
}

// Finalize computes derived statistics and returns the schema tree. The
// result is the profiler's own accumulator; treat it as read-only.
func (p *Profiler) Finalize() *schemastat.Accumulator {
	p.acc.Finalize()
	return p.acc
}

// Schema returns the accumulator without finalizing, for inspection.
func (p *Profiler) Schema() *schemastat.Accumulator {
	return p.acc
}
