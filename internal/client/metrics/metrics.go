// Package metrics counts remote calls by operation and outcome.
package metrics

import (
	"github.com/dmitrijs2005/assettrack/internal/client/result"
	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used as the "operation" label.
const (
	OpLogin    = "login"
	OpGetItem  = "get_item"
	OpRegister = "register_item"
	OpUpdate   = "update_item"
	OpList     = "list_items"
)

const (
	namespace = "assettrack"
	callsName = "remote_calls_total"
)

// Recorder is nil-safe: a nil *Recorder records nothing.
type Recorder struct {
	calls *prometheus.CounterVec
}

// NewRecorder registers the counters on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      callsName,
		Help:      "Remote calls made by the client store, by operation and outcome.",
	}, []string{"operation", "outcome"})

	if err := reg.Register(calls); err != nil {
		return nil, err
	}
	return &Recorder{calls: calls}, nil
}

func (r *Recorder) Observe(operation string, o result.Outcome) {
	if r == nil {
		return
	}
	r.calls.WithLabelValues(operation, o.String()).Inc()
}

// Count returns the current value for one label pair.
func (r *Recorder) Count(operation string, o result.Outcome) float64 {
	if r == nil {
		return 0
	}
	return counterValue(r.calls.WithLabelValues(operation, o.String()))
}
