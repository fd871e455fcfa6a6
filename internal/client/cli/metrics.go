package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/assettrack/internal/client/metrics"
)

// Metrics prints the remote call counters gathered so far.
func (a *App) Metrics(ctx context.Context) error {
	if a.metrics == nil {
		fmt.Fprintln(a.out, "Metrics are not collected")
		return nil
	}

	samples, err := metrics.Snapshot(a.metrics)
	if err != nil {
		a.log.Warn(ctx, "metrics unavailable", "error", err)
		return err
	}
	if len(samples) == 0 {
		fmt.Fprintln(a.out, "No remote calls yet")
		return nil
	}

	fmt.Fprintln(a.out, "Remote calls:")
	for _, s := range samples {
		fmt.Fprintf(a.out, "  %-14s %-20s %.0f\n", s.Operation, s.Outcome, s.Value)
	}
	return nil
}
