// Package report delivers training progress snapshots to loggers and metrics.
package report

import (
	"github.com/google/uuid"

	"neuron-forge/internal/metrics"
	"neuron-forge/internal/model"
)

// Snapshot is a read-only view of a training run at the end of an epoch.
type Snapshot struct {
	RunID  uuid.UUID
	Model  string
	Epoch  int
	Epochs int
	Params model.Params
	Loss   float64
	Stats  metrics.Snapshot
	Done   bool
}

// Reporter receives progress snapshots. Implementations must not block the caller.
type Reporter interface {
	Report(s Snapshot)
}

// Func adapts a function to Reporter.
type Func func(s Snapshot)

func (f Func) Report(s Snapshot) { f(s) }

// Multi fans a snapshot out to several reporters in order.
type Multi []Reporter

func (m Multi) Report(s Snapshot) {
	for _, r := range m {
		if r != nil {
			r.Report(s)
		}
	}
}

// Discard drops every snapshot.
var Discard Reporter = Func(func(Snapshot) {})
