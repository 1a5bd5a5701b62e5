package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"neuron-forge/internal/activation"
	"neuron-forge/internal/trainer"
)

// Variants with a training step.
const (
	VariantLinear = "linear"
	VariantMulti  = "multi"
	VariantOR     = "or"
)

// Variants that only exercise the primitives.
const (
	VariantMatrix     = "matrix"
	VariantActivation = "activation"
)

// Init policies for the model parameters.
const (
	InitZeros   = "zeros"
	InitUniform = "uniform"
)

// Config captures the runtime knobs for a run.
type Config struct {
	Variant      string      `yaml:"variant"`
	Dataset      string      `yaml:"dataset"`
	Mode         string      `yaml:"mode"`
	Activation   string      `yaml:"activation"`
	Init         string      `yaml:"init"`
	LearningRate float64     `yaml:"learning_rate"`
	Epochs       int         `yaml:"epochs"`
	Seed         int64       `yaml:"seed"`
	LogEvery     int         `yaml:"log_every"`
	Workers      int         `yaml:"workers"`
	Predict      [][]float64 `yaml:"predict"`
	Probe        *float64    `yaml:"probe"`
	ArenaCells   int         `yaml:"arena_cells"`
	MetricsAddr  string      `yaml:"metrics_addr"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Variant      string
	Dataset      string
	Mode         string
	Activation   string
	LearningRate float64
	Epochs       int
	Seed         int64
	LogEvery     int
	Workers      int
	MetricsAddr  string
}

// Load reads a Config from YAML. Call ApplyDefaults and Validate once overrides are in.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Variant != "" {
		c.Variant = o.Variant
	}
	if o.Dataset != "" {
		c.Dataset = o.Dataset
	}
	if o.Mode != "" {
		c.Mode = o.Mode
	}
	if o.Activation != "" {
		c.Activation = o.Activation
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.MetricsAddr != "" {
		c.MetricsAddr = o.MetricsAddr
	}
}

// ApplyDefaults fills every unset field from the preset of the configured variant.
// A LogEvery still unset falls back to a tenth of the epochs.
func (c *Config) ApplyDefaults() error {
	if c.Variant == "" {
		c.Variant = VariantLinear
	}
	p, ok := Preset(c.Variant)
	if !ok {
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.Dataset == "" {
		c.Dataset = p.Dataset
	}
	if c.Mode == "" {
		c.Mode = p.Mode
	}
	if c.Activation == "" {
		c.Activation = p.Activation
	}
	if c.Init == "" {
		c.Init = p.Init
	}
	if c.LearningRate == 0 {
		c.LearningRate = p.LearningRate
	}
	if c.Epochs == 0 {
		c.Epochs = p.Epochs
	}
	if c.LogEvery == 0 {
		c.LogEvery = p.LogEvery
	}
	if c.LogEvery == 0 && c.Epochs > 0 {
		c.LogEvery = c.Epochs / 10
		if c.LogEvery == 0 {
			c.LogEvery = 1
		}
	}
	if c.Predict == nil {
		c.Predict = p.Predict
	}
	if c.Probe == nil {
		c.Probe = p.Probe
	}
	return nil
}

// Validate verifies the config is runnable. It does not modify c.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Variant {
	case VariantMatrix:
		if c.ArenaCells < 0 {
			return fmt.Errorf("arena_cells must be >= 0 (got %d)", c.ArenaCells)
		}
		return nil
	case VariantActivation:
		if c.Probe == nil {
			return errors.New("probe must be set for the activation variant")
		}
		return nil
	case VariantLinear, VariantMulti, VariantOR:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}

	if c.Dataset == "" {
		return errors.New("dataset must be set")
	}
	if _, err := trainer.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := activation.ParseKind(c.Activation); err != nil {
		return err
	}
	if c.Init != InitZeros && c.Init != InitUniform {
		return fmt.Errorf("init must be %q or %q (got %q)", InitZeros, InitUniform, c.Init)
	}
	if !(c.LearningRate > 0) {
		return fmt.Errorf("learning_rate must be > 0 (got %v)", c.LearningRate)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("log_every must be >= 0 (got %d)", c.LogEvery)
	}
	return nil
}

// Hyperparameters converts the training knobs. Validate must have succeeded.
func (c *Config) Hyperparameters() (trainer.Hyperparameters, error) {
	mode, err := trainer.ParseMode(c.Mode)
	if err != nil {
		return trainer.Hyperparameters{}, err
	}
	return trainer.Hyperparameters{
		LearningRate: c.LearningRate,
		Epochs:       c.Epochs,
		Mode:         mode,
		LogEvery:     c.LogEvery,
		Workers:      c.Workers,
	}, nil
}

// ActivationKind parses the configured activation.
func (c *Config) ActivationKind() (activation.Kind, error) {
	return activation.ParseKind(c.Activation)
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}
