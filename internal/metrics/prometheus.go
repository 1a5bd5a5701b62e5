package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "neuron"

// Collectors are the training gauges and counters exported to Prometheus.
type Collectors struct {
	Epochs  *prometheus.CounterVec
	Loss    *prometheus.GaugeVec
	Weights *prometheus.GaugeVec
	Bias    *prometheus.GaugeVec
	Dropped *prometheus.CounterVec
}

// NewCollectors creates the collectors and registers them with reg.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		Epochs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "epochs_total",
			Help:      "Epochs completed.",
		}, []string{"model"}),
		Loss: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loss",
			Help:      "Mean squared error over the training set at the last report.",
		}, []string{"model"}),
		Weights: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weight",
			Help:      "Current weight per feature.",
		}, []string{"model", "feature"}),
		Bias: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bias",
			Help:      "Current bias.",
		}, []string{"model"}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_dropped_total",
			Help:      "Progress reports dropped because the reporter was busy.",
		}, []string{"model"}),
	}
	for _, col := range []prometheus.Collector{c.Epochs, c.Loss, c.Weights, c.Bias, c.Dropped} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe records the parameters and loss of a model after the given number of new epochs.
func (c *Collectors) Observe(model string, epochs int, weights []float64, bias, loss float64) {
	c.Epochs.WithLabelValues(model).Add(float64(epochs))
	c.Loss.WithLabelValues(model).Set(loss)
	c.Bias.WithLabelValues(model).Set(bias)
	for k, w := range weights {
		c.Weights.WithLabelValues(model, strconv.Itoa(k)).Set(w)
	}
}
