// Package metrics holds the prometheus counters recorded by the stores.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "edutalk"

// Outcome label values for auth attempts.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	authAttempts     *prometheus.CounterVec
	feedMutations    *prometheus.CounterVec
	storageFallbacks *prometheus.CounterVec
}

// New creates the counters and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Login and signup attempts by outcome.",
		}, []string{"op", "outcome"}),
		feedMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_mutations_total",
			Help:      "Persisted community feed mutations.",
		}, []string{"op"}),
		storageFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_fallbacks_total",
			Help:      "Persisted records that could not be decoded and were treated as absent.",
		}, []string{"record"}),
	}

	for _, c := range []prometheus.Collector{m.authAttempts, m.feedMutations, m.storageFallbacks} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) AuthAttempt(op, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) FeedMutation(op string) {
	if m == nil {
		return
	}
	m.feedMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) StorageFallback(record string) {
	if m == nil {
		return
	}
	m.storageFallbacks.WithLabelValues(record).Inc()
}

// Summary renders every counter gathered from g as "name{labels} value"
// lines, sorted. Families without samples are skipped.
func Summary(g prometheus.Gatherer) ([]string, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	return lines, nil
}
