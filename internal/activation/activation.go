// Package activation holds the scalar activation functions and their derivatives.
//
// Derivatives are expressed in terms of the activation output y, not the
// pre-activation input, so callers pass the result of the forward pass.
package activation

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects the activation applied to a neuron's weighted sum.
type Kind int

const (
	Identity Kind = iota
	Sigmoid
	ReLU
)

var names = map[Kind]string{
	Identity: "identity",
	Sigmoid:  "sigmoid",
	ReLU:     "relu",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("activation(%d)", int(k))
}

// ParseKind maps a name such as "sigmoid" to its Kind. An empty name is Identity.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "linear" || name == "none" {
		return Identity, nil
	}
	for k, n := range names {
		if n == name {
			return k, nil
		}
	}
	return Identity, fmt.Errorf("unknown activation %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := names[k]; !ok {
		return nil, fmt.Errorf("unknown activation %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Apply evaluates the activation at x.
func (k Kind) Apply(x float64) float64 {
	switch k {
	case Sigmoid:
		return SigmoidOf(x)
	case ReLU:
		return ReLUOf(x)
	default:
		return x
	}
}

// DerivativeFromOutput evaluates the derivative given the activation output y.
func (k Kind) DerivativeFromOutput(y float64) float64 {
	switch k {
	case Sigmoid:
		return SigmoidDerivativeFromOutput(y)
	case ReLU:
		if y > 0 {
			return 1
		}
		return 0
	default:
		return 1
	}
}

// SigmoidOf returns 1/(1+e^-x). Large magnitudes saturate to 0 or 1.
func SigmoidOf(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	// e^x underflows to 0 instead of e^-x overflowing to +Inf.
	e := math.Exp(x)
	return e / (1 + e)
}

// SigmoidDerivativeFromOutput returns y*(1-y) where y = SigmoidOf(x).
func SigmoidDerivativeFromOutput(y float64) float64 {
	return y * (1 - y)
}

// ReLUOf returns max(0, x).
func ReLUOf(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}
