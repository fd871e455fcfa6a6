package metrics

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

// Sample is one remote_calls_total series.
type Sample struct {
	Operation string
	Outcome   string
	Value     float64
}

// Snapshot gathers g and returns the remote call counters ordered by
// operation, then outcome. Other families in g are ignored.
func Snapshot(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	fqName := prometheus.BuildFQName(namespace, "", callsName)
	var out []Sample
	for _, f := range families {
		if f.GetName() != fqName {
			continue
		}
		for _, m := range f.GetMetric() {
			s := Sample{Value: m.GetCounter().GetValue()}
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "operation":
					s.Operation = l.GetValue()
				case "outcome":
					s.Outcome = l.GetValue()
				}
			}
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Operation != out[j].Operation {
			return out[i].Operation < out[j].Operation
		}
		return out[i].Outcome < out[j].Outcome
	})
	return out, nil
}
