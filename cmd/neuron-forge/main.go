package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"neuron-forge/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config")
	variant := flag.String("variant", "", "Variant to run: linear, multi, or, matrix, activation")
	datasetRef := flag.String("dataset", "", "Dataset file, directory of shards, or builtin:<name>")
	mode := flag.String("mode", "", "Training mode: batch or online")
	act := flag.String("activation", "", "Activation: identity, sigmoid or relu")
	learningRate := flag.Float64("learning-rate", 0, "Learning rate")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	seed := flag.Int64("seed", 0, "PRNG seed (0 seeds from the clock)")
	logEvery := flag.Int("log-every", 0, "Report every N epochs")
	workers := flag.Int("workers", 0, "Goroutines for batch gradient accumulation")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	level := flag.String("log-level", "info", "Log level")
	pretty := flag.Bool("pretty", true, "Human readable log output")

	flag.Parse()

	if *pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	cfg := &config.Config{}
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *cfgPath).Msg("failed to load config")
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		Variant:      *variant,
		Dataset:      *datasetRef,
		Mode:         *mode,
		Activation:   *act,
		LearningRate: *learningRate,
		Epochs:       *epochs,
		Seed:         *seed,
		LogEvery:     *logEvery,
		Workers:      *workers,
		MetricsAddr:  *metricsAddr,
	})

	if err := cfg.ApplyDefaults(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Variant {
	case config.VariantMatrix:
		err = runMatrix(cfg, rng)
	case config.VariantActivation:
		runActivation(*cfg.Probe)
	default:
		err = runTraining(ctx, cfg, rng)
	}
	if err != nil {
		log.Fatal().Err(err).Str("variant", cfg.Variant).Msg("run failed")
	}
}
