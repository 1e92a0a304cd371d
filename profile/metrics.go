package profile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsObserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemascope_documents_observed_total",
		Help: "Documents folded into a profiler.",
	})
	documentsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemascope_documents_rejected_total",
		Help: "Documents with at least one field type mismatch.",
	})
	decodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemascope_decode_failures_total",
		Help: "Document payloads that could not be decoded.",
	})
)
