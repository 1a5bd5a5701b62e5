package config

// Preset returns the stock configuration of a variant.
func Preset(variant string) (Config, bool) {
	switch variant {
	case VariantLinear:
		return Config{
			Variant:      VariantLinear,
			Dataset:      "builtin:linear",
			Mode:         "batch",
			Activation:   "identity",
			Init:         InitZeros,
			LearningRate: 0.01,
			Epochs:       1000,
			LogEvery:     100,
			Predict:      [][]float64{{5}},
		}, true
	case VariantMulti:
		return Config{
			Variant:      VariantMulti,
			Dataset:      "builtin:study-sleep",
			Mode:         "batch",
			Activation:   "identity",
			Init:         InitZeros,
			LearningRate: 0.01,
			Epochs:       2000,
			LogEvery:     400,
			Predict:      [][]float64{{5, 8}},
		}, true
	case VariantOR:
		return Config{
			Variant:      VariantOR,
			Dataset:      "builtin:or",
			Mode:         "online",
			Activation:   "sigmoid",
			Init:         InitUniform,
			LearningRate: 0.1,
			Epochs:       10000,
			LogEvery:     1000,
			Predict:      [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		}, true
	case VariantMatrix:
		return Config{Variant: VariantMatrix}, true
	case VariantActivation:
		probe := -2.0
		return Config{Variant: VariantActivation, Probe: &probe}, true
	}
	return Config{}, false
}
