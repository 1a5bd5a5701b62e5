package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"neuron-forge/internal/config"
	"neuron-forge/internal/dataset"
	"neuron-forge/internal/metrics"
	"neuron-forge/internal/model"
	"neuron-forge/internal/report"
	"neuron-forge/internal/trainer"
)

func runTraining(ctx context.Context, cfg *config.Config, rng *rand.Rand) error {
	ds, err := dataset.Open(cfg.Dataset)
	if err != nil {
		return err
	}
	act, err := cfg.ActivationKind()
	if err != nil {
		return err
	}
	hp, err := cfg.Hyperparameters()
	if err != nil {
		return err
	}

	initializer := model.Zeros()
	if cfg.Init == config.InitUniform {
		initializer = model.Uniform(rng)
	}
	m, err := model.New(ds.Features(), act, initializer)
	if err != nil {
		return err
	}

	reporters := report.Multi{report.NewLogger(log.Logger)}
	var onDrop func(s report.Snapshot)
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		collectors, err := metrics.NewCollectors(reg)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		prom := report.NewPrometheus(collectors)
		reporters = append(reporters, prom)
		onDrop = func(s report.Snapshot) { prom.Dropped(s.Model) }
		stopServer := serveMetrics(cfg.MetricsAddr, reg)
		defer stopServer()
	}
	async := report.NewAsync(reporters, 64, report.OnDrop(onDrop))

	tr, err := trainer.New(m, ds, hp,
		trainer.WithName(cfg.Variant),
		trainer.WithReporter(async),
	)
	if err != nil {
		async.Close()
		return err
	}

	log.Info().
		Str("run", tr.RunID().String()).
		Str("dataset", ds.Name).
		Int("features", ds.Features()).
		Str("mode", hp.Mode.String()).
		Str("activation", act.String()).
		Int64("seed", cfg.Seed).
		Msg("start training")

	res, err := tr.Run(ctx)
	async.Close()
	if err != nil {
		return err
	}
	if n := async.Dropped(); n > 0 {
		log.Warn().Int64("dropped", n).Msg("progress reports dropped")
	}

	trained, err := tr.Model()
	if err != nil {
		return err
	}
	log.Info().
		Str("formula", trained.Formula()).
		Float64("loss", res.Loss).
		Dur("elapsed", res.Elapsed).
		Msg("training complete")

	return predictAll(trained, cfg.Predict)
}

func predictAll(p model.Predictor, inputs [][]float64) error {
	for _, x := range inputs {
		y, err := p.Predict(x)
		if err != nil {
			return fmt.Errorf("predict %v: %w", x, err)
		}
		log.Info().Floats64("input", x).Float64("prediction", y).Msg("prediction")
	}
	return nil
}
