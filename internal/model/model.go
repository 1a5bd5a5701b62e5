package model

import (
	"errors"
	"fmt"
	"strings"

	"neuron-forge/internal/activation"
	"neuron-forge/internal/linalg"
)

// ErrLengthMismatch is returned when a feature vector does not match the weight count.
var ErrLengthMismatch = linalg.ErrLengthMismatch

// Predictor is the inference side of a trained model.
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// Params is a snapshot of the weights and bias.
type Params struct {
	Weights []float64
	Bias    float64
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	return Params{Weights: append([]float64(nil), p.Weights...), Bias: p.Bias}
}

// Evaluate computes act(bias + sum w[k]*x[k]) for p without touching it.
func Evaluate(p Params, act activation.Kind, features []float64) (float64, error) {
	dot, err := linalg.Dot(p.Weights, features)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	return act.Apply(p.Bias + dot), nil
}

// Model is a single neuron: act(bias + sum w[k]*x[k]).
// It is read-only; training works on its own copy of the parameters.
type Model struct {
	params Params
	act    activation.Kind
}

// New constructs a model over the given number of features, initialised by init.
// A nil init leaves every parameter at zero.
func New(features int, act activation.Kind, init Initializer) (*Model, error) {
	if features <= 0 {
		return nil, fmt.Errorf("model: features must be > 0 (got %d)", features)
	}
	if init == nil {
		init = Zeros()
	}
	weights := make([]float64, features)
	bias := init.Init(weights)
	return &Model{params: Params{Weights: weights, Bias: bias}, act: act}, nil
}

// FromParams constructs a model holding a copy of p.
func FromParams(p Params, act activation.Kind) (*Model, error) {
	if len(p.Weights) == 0 {
		return nil, errors.New("model: params have no weights")
	}
	return &Model{params: p.Clone(), act: act}, nil
}

// Predict runs the forward pass for one feature vector.
func (m *Model) Predict(features []float64) (float64, error) {
	return Evaluate(m.params, m.act, features)
}

// Params returns a copy of the current parameters.
func (m *Model) Params() Params {
	return m.params.Clone()
}

// Features returns the number of inputs the model expects.
func (m *Model) Features() int {
	return len(m.params.Weights)
}

// Activation returns the configured activation.
func (m *Model) Activation() activation.Kind {
	return m.act
}

// Formula renders the model, e.g. "y = 2.00x1 + 0.00".
func (m *Model) Formula() string {
	var sb strings.Builder
	for k, w := range m.params.Weights {
		if k > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%.2fx%d", w, k+1)
	}
	fmt.Fprintf(&sb, " + %.2f", m.params.Bias)
	if m.act == activation.Identity {
		return "y = " + sb.String()
	}
	return fmt.Sprintf("y = %s(%s)", m.act, sb.String())
}
