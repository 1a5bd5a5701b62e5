package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(4, 20*time.Millisecond, 1.2)
	w.Record(4, 20*time.Millisecond, 0.8)
	snap := w.Snapshot()

	assert.InDelta(t, 200.0, snap.ExamplesPerSec, 1e-9)
	assert.InDelta(t, 20.0, snap.AvgEpochMS, 1e-9)
	assert.Equal(t, 2, snap.Epochs)
	assert.Equal(t, 0.8, snap.LastLoss)

	assert.Zero(t, w.examples)
	assert.Zero(t, w.epochs)
	assert.Zero(t, w.compute)
}

func TestWindowEmptySnapshot(t *testing.T) {
	var w Window
	assert.Equal(t, Snapshot{}, w.Snapshot())
}
