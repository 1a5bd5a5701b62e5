package report

import (
	"sync"

	"neuron-forge/internal/metrics"
)

// Prometheus exports snapshots through metrics collectors.
type Prometheus struct {
	collectors *metrics.Collectors

	mu   sync.Mutex
	last map[string]int
}

// NewPrometheus creates a reporter feeding c.
func NewPrometheus(c *metrics.Collectors) *Prometheus {
	return &Prometheus{collectors: c, last: make(map[string]int)}
}

func (p *Prometheus) Report(s Snapshot) {
	p.mu.Lock()
	delta := s.Epoch - p.last[s.Model]
	if delta < 0 {
		// a new run for the same model started over
		delta = s.Epoch
	}
	p.last[s.Model] = s.Epoch
	p.mu.Unlock()

	p.collectors.Observe(s.Model, delta, s.Params.Weights, s.Params.Bias, s.Loss)
}

// Dropped counts a report lost by an Async reporter for the given model.
func (p *Prometheus) Dropped(model string) {
	p.collectors.Dropped.WithLabelValues(model).Inc()
}
