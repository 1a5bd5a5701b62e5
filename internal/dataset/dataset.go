package dataset

import (
	"errors"
	"fmt"

	"neuron-forge/internal/linalg"
)

var (
	// ErrEmptyDataset is returned when a dataset holds no examples.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrLengthMismatch is returned when feature vectors disagree in length.
	ErrLengthMismatch = linalg.ErrLengthMismatch
)

// FeatureVector is an ordered list of feature values.
type FeatureVector []float64

// Example pairs a feature vector with its target value.
type Example struct {
	Features FeatureVector `yaml:"features"`
	Target   float64       `yaml:"target"`
}

// Dataset is an ordered, fixed list of training examples.
type Dataset struct {
	Name     string    `yaml:"name,omitempty"`
	Examples []Example `yaml:"examples"`
}

// New builds a dataset from parallel feature and target slices.
func New(name string, features [][]float64, targets []float64) (Dataset, error) {
	if len(features) != len(targets) {
		return Dataset{}, fmt.Errorf("dataset %s: %w: %d feature rows, %d targets", name, ErrLengthMismatch, len(features), len(targets))
	}
	ds := Dataset{Name: name, Examples: make([]Example, len(features))}
	for i := range features {
		ds.Examples[i] = Example{
			Features: append(FeatureVector(nil), features[i]...),
			Target:   targets[i],
		}
	}
	return ds, ds.Validate()
}

// Len returns the number of examples.
func (d Dataset) Len() int {
	return len(d.Examples)
}

// Features returns the feature vector length shared by every example, or 0 when empty.
func (d Dataset) Features() int {
	if len(d.Examples) == 0 {
		return 0
	}
	return len(d.Examples[0].Features)
}

// Validate checks the dataset is non-empty and every example has the same
// non-zero number of features.
func (d Dataset) Validate() error {
	if len(d.Examples) == 0 {
		return fmt.Errorf("dataset %s: %w", d.Name, ErrEmptyDataset)
	}
	f := d.Features()
	if f == 0 {
		return fmt.Errorf("dataset %s: %w: example 0 has no features", d.Name, ErrLengthMismatch)
	}
	for i, ex := range d.Examples {
		if len(ex.Features) != f {
			return fmt.Errorf("dataset %s: %w: example %d has %d features, want %d", d.Name, ErrLengthMismatch, i, len(ex.Features), f)
		}
	}
	return nil
}

// Concat appends the examples of every dataset in order.
func Concat(name string, parts ...Dataset) Dataset {
	out := Dataset{Name: name}
	for _, p := range parts {
		out.Examples = append(out.Examples, p.Examples...)
	}
	return out
}
