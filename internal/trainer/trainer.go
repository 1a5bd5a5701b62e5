// Package trainer runs fixed-length gradient descent over a single-neuron model.
//
// Both disciplines use the error term predict - target and subtract the scaled
// gradient from the parameters. For the sigmoid neuron this is the same step as
// adding lr * (target - predict) * y(1-y) * x.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"

	"neuron-forge/internal/activation"
	"neuron-forge/internal/dataset"
	"neuron-forge/internal/metrics"
	"neuron-forge/internal/model"
	"neuron-forge/internal/report"
)

var (
	// ErrInvalidHyperparameters is returned by New for unusable hyperparameters.
	ErrInvalidHyperparameters = errors.New("invalid hyperparameters")
	// ErrAlreadyRun is returned when Run is called on a trainer that has left StateInitialized.
	ErrAlreadyRun = errors.New("trainer already run")
	// ErrEmptyDataset is returned by New for a dataset without examples.
	ErrEmptyDataset = dataset.ErrEmptyDataset
	// ErrLengthMismatch is returned by New when the dataset and model disagree on the feature count.
	ErrLengthMismatch = dataset.ErrLengthMismatch
)

// Hyperparameters are fixed for the duration of a run.
type Hyperparameters struct {
	LearningRate float64
	Epochs       int
	Mode         Mode
	// LogEvery is the reporting stride in epochs. The final epoch is always reported.
	LogEvery int
	// Workers > 1 splits batch gradient accumulation across goroutines.
	Workers int
}

// Validate verifies the hyperparameters are runnable.
func (h Hyperparameters) Validate() error {
	if !(h.LearningRate > 0) {
		return fmt.Errorf("%w: learning rate must be > 0 (got %v)", ErrInvalidHyperparameters, h.LearningRate)
	}
	if h.Epochs <= 0 {
		return fmt.Errorf("%w: epochs must be > 0 (got %d)", ErrInvalidHyperparameters, h.Epochs)
	}
	if h.Mode != Batch && h.Mode != Online {
		return fmt.Errorf("%w: %s", ErrInvalidHyperparameters, h.Mode)
	}
	if h.LogEvery < 0 {
		return fmt.Errorf("%w: log every must be >= 0 (got %d)", ErrInvalidHyperparameters, h.LogEvery)
	}
	if h.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0 (got %d)", ErrInvalidHyperparameters, h.Workers)
	}
	return nil
}

// Option customises a Trainer.
type Option func(t *Trainer)

// WithReporter sets the progress reporter. The trainer calls it synchronously,
// so slow reporters should be wrapped in report.Async.
func WithReporter(r report.Reporter) Option {
	return func(t *Trainer) {
		if r != nil {
			t.reporter = r
		}
	}
}

// WithName labels snapshots and log lines.
func WithName(name string) Option {
	return func(t *Trainer) {
		t.name = name
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id uuid.UUID) Option {
	return func(t *Trainer) {
		t.runID = id
	}
}

// Result summarises a finished run.
type Result struct {
	RunID   uuid.UUID
	Epochs  int
	Loss    float64
	Params  model.Params
	Elapsed time.Duration
}

// Trainer owns the parameters of one training run and is their only writer.
type Trainer struct {
	params   model.Params
	act      activation.Kind
	data     dataset.Dataset
	hp       Hyperparameters
	reporter report.Reporter
	name     string
	runID    uuid.UUID
	state    State
	window   metrics.Window
}

// New validates its inputs and returns a trainer in StateInitialized.
// The trainer starts from a copy of m's parameters and never writes to m;
// the trained model comes from Model or Result.Params.
func New(m *model.Model, ds dataset.Dataset, hp Hyperparameters, opts ...Option) (*Trainer, error) {
	if m == nil {
		return nil, errors.New("trainer: model is nil")
	}
	if err := hp.Validate(); err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	if ds.Features() != m.Features() {
		return nil, fmt.Errorf("trainer: %w: dataset has %d features, model expects %d", ErrLengthMismatch, ds.Features(), m.Features())
	}
	t := &Trainer{
		params:   m.Params(),
		act:      m.Activation(),
		data:     ds,
		hp:       hp,
		reporter: report.Discard,
		name:     ds.Name,
		runID:    uuid.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// State returns the current lifecycle state.
func (t *Trainer) State() State {
	return t.state
}

// RunID identifies this run in snapshots and logs.
func (t *Trainer) RunID() uuid.UUID {
	return t.runID
}

// Run executes exactly Epochs epochs. There is no early stopping; ctx is
// checked between epochs only.
func (t *Trainer) Run(ctx context.Context) (Result, error) {
	if t.state != StateInitialized {
		return Result{}, fmt.Errorf("trainer %s: %w", t.runID, ErrAlreadyRun)
	}
	t.state = StateTraining
	defer func() { t.state = StateDone }()

	logger := log.With().Str("run", t.runID.String()).Str("model", t.name).Logger()
	logger.Debug().
		Str("mode", t.hp.Mode.String()).
		Float64("learning_rate", t.hp.LearningRate).
		Int("epochs", t.hp.Epochs).
		Int("examples", t.data.Len()).
		Msg("training started")

	start := time.Now()
	for epoch := 1; epoch <= t.hp.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("epoch", epoch).Msg("training interrupted")
			return t.result(epoch-1, start), err
		}

		startCompute := time.Now()
		var err error
		switch t.hp.Mode {
		case Online:
			err = t.onlineEpoch()
		default:
			err = t.batchEpoch()
		}
		if err != nil {
			return t.result(epoch-1, start), fmt.Errorf("epoch %d: %w", epoch, err)
		}
		computeTime := time.Since(startCompute)

		last := epoch == t.hp.Epochs
		if !last && (t.hp.LogEvery == 0 || epoch%t.hp.LogEvery != 0) {
			t.window.Record(t.data.Len(), computeTime, 0)
			continue
		}
		loss, err := t.Loss()
		if err != nil {
			return t.result(epoch, start), err
		}
		t.window.Record(t.data.Len(), computeTime, loss)
		t.reporter.Report(report.Snapshot{
			RunID:  t.runID,
			Model:  t.name,
			Epoch:  epoch,
			Epochs: t.hp.Epochs,
			Params: t.params.Clone(),
			Loss:   loss,
			Stats:  t.window.Snapshot(),
			Done:   last,
		})
	}

	res := t.result(t.hp.Epochs, start)
	logger.Debug().Float64("loss", res.Loss).Dur("elapsed", res.Elapsed).Msg("training finished")
	return res, nil
}

// Model returns a read-only model over a copy of the current parameters.
func (t *Trainer) Model() (*model.Model, error) {
	return model.FromParams(t.params, t.act)
}

// Loss returns the mean squared error of the model over the dataset.
func (t *Trainer) Loss() (float64, error) {
	residuals := make([]float64, t.data.Len())
	for j, ex := range t.data.Examples {
		y, err := t.predict(ex.Features)
		if err != nil {
			return 0, err
		}
		residuals[j] = y - ex.Target
	}
	return floats.Dot(residuals, residuals) / float64(len(residuals)), nil
}

func (t *Trainer) result(epochs int, start time.Time) Result {
	loss, _ := t.Loss()
	return Result{
		RunID:   t.runID,
		Epochs:  epochs,
		Loss:    loss,
		Params:  t.params.Clone(),
		Elapsed: time.Since(start),
	}
}
