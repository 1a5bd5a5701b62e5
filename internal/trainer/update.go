package trainer

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"neuron-forge/internal/dataset"
	"neuron-forge/internal/model"
)

func (t *Trainer) predict(features []float64) (float64, error) {
	return model.Evaluate(t.params, t.act, features)
}

// descend is the single write path for the parameters:
// w[k] -= scale*dw[k] and bias -= scale*db. New guarantees len(dw) matches.
func (t *Trainer) descend(scale float64, dw []float64, db float64) {
	floats.AddScaled(t.params.Weights, -scale, dw)
	t.params.Bias -= scale * db
}

// batchEpoch accumulates the gradient over the whole dataset and applies
// w -= lr * (2/N) * dw, b -= lr * (2/N) * db.
func (t *Trainer) batchEpoch() error {
	var (
		dw  []float64
		db  float64
		err error
	)
	if t.hp.Workers > 1 && t.data.Len() > 1 {
		dw, db, err = t.accumulateParallel()
	} else {
		dw = make([]float64, len(t.params.Weights))
		db, err = t.accumulate(t.data.Examples, dw)
	}
	if err != nil {
		return err
	}
	n := float64(t.data.Len())
	t.descend(t.hp.LearningRate*(2/n), dw, db)
	return nil
}

// accumulate adds the per-example gradient of examples into dw and returns the bias part.
// For the identity activation the derivative is 1 and this is the plain MSE gradient.
func (t *Trainer) accumulate(examples []dataset.Example, dw []float64) (float64, error) {
	db := 0.0
	for _, ex := range examples {
		y, err := t.predict(ex.Features)
		if err != nil {
			return 0, err
		}
		delta := (y - ex.Target) * t.act.DerivativeFromOutput(y)
		floats.AddScaled(dw, delta, ex.Features)
		db += delta
	}
	return db, nil
}

// accumulateParallel splits the dataset into contiguous chunks, one per worker.
// The parameters are only read while the chunks run; partial sums are reduced in chunk order.
func (t *Trainer) accumulateParallel() ([]float64, float64, error) {
	n := t.data.Len()
	workers := t.hp.Workers
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers
	chunks := (n + size - 1) / size

	partialW := make([][]float64, chunks)
	partialB := make([]float64, chunks)

	var g errgroup.Group
	for c := 0; c < chunks; c++ {
		c := c
		lo := c * size
		hi := lo + size
		if hi > n {
			hi = n
		}
		partialW[c] = make([]float64, len(t.params.Weights))
		g.Go(func() error {
			db, err := t.accumulate(t.data.Examples[lo:hi], partialW[c])
			partialB[c] = db
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	dw := partialW[0]
	db := partialB[0]
	for c := 1; c < chunks; c++ {
		floats.Add(dw, partialW[c])
		db += partialB[c]
	}
	return dw, db, nil
}

// onlineEpoch updates after every example:
// gradient = (y - target) * act'(y), w -= lr * gradient * x, b -= lr * gradient.
func (t *Trainer) onlineEpoch() error {
	for _, ex := range t.data.Examples {
		y, err := t.predict(ex.Features)
		if err != nil {
			return err
		}
		gradient := (y - ex.Target) * t.act.DerivativeFromOutput(y)
		// dw for one example is gradient*x and db is gradient, so scale x by lr*gradient.
		t.descend(t.hp.LearningRate*gradient, ex.Features, 1)
	}
	return nil
}
