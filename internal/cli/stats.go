package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/edutalk/internal/metrics"
)

// Stats prints the counters recorded during this run.
func (a *App) Stats(_ context.Context, _ []string) error {
	if a.metrics == nil {
		fmt.Fprintln(a.out, "Metrics are disabled.")
		return nil
	}

	lines, err := metrics.Summary(a.metrics)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "Nothing recorded yet.")
		return nil
	}
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	return nil
}
