package model

// Source yields uniform random values in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// SourceFunc adapts a function to Source.
type SourceFunc func() float64

func (f SourceFunc) Float64() float64 { return f() }

// Initializer fills the weights and returns the initial bias.
type Initializer interface {
	Init(weights []float64) (bias float64)
}

type zeros struct{}

// Zeros starts every weight and the bias at 0.
func Zeros() Initializer { return zeros{} }

func (zeros) Init(weights []float64) float64 {
	for i := range weights {
		weights[i] = 0
	}
	return 0
}

type uniform struct {
	src Source
}

// Uniform draws each weight, then the bias, from src.
func Uniform(src Source) Initializer { return uniform{src: src} }

func (u uniform) Init(weights []float64) float64 {
	for i := range weights {
		weights[i] = u.src.Float64()
	}
	return u.src.Float64()
}
