package main

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"neuron-forge/internal/activation"
	"neuron-forge/internal/config"
	"neuron-forge/internal/linalg"
)

func runMatrix(cfg *config.Config, rng *rand.Rand) error {
	arena := linalg.NewArena(cfg.ArenaCells)
	defer func() {
		if n := arena.Close(); n > 0 {
			log.Warn().Int("matrices", n).Msg("arena closed with live matrices")
		}
	}()

	inputs, err := arena.FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		return err
	}
	defer release(arena, inputs)

	weights, err := arena.FromRows([][]float64{
		{7, 8},
		{9, 10},
		{11, 12},
	})
	if err != nil {
		return err
	}
	defer release(arena, weights)

	out, err := linalg.Multiply(inputs, weights)
	if err != nil {
		return err
	}
	log.Info().Msgf("result matrix:\n%v", out)
	if err := arena.Release(out); err != nil {
		return err
	}

	// small random weights, as a layer initialiser would draw them
	small := func() float64 { return (rng.Float64()*2 - 1) * 0.01 }
	err = arena.Scoped(3, 2, small, func(w *linalg.Matrix) error {
		out, err := linalg.Multiply(inputs, w)
		if err != nil {
			return err
		}
		defer release(arena, out)
		log.Info().Msgf("random projection:\n%v", out)
		return nil
	})
	if err != nil {
		return err
	}

	stats := arena.Stats()
	log.Info().
		Int("allocations", stats.Allocations).
		Int("releases", stats.Releases).
		Int("live", stats.Live).
		Msg("arena")
	return nil
}

// release returns m to the arena and logs a failed release.
func release(arena *linalg.Arena, m *linalg.Matrix) bool {
	if err := arena.Release(m); err != nil {
		log.Warn().Err(err).Msg("release matrix")
		return false
	}
	return true
}

func runActivation(x float64) {
	log.Info().
		Float64("input", x).
		Float64("sigmoid", activation.SigmoidOf(x)).
		Float64("relu", activation.ReLUOf(x)).
		Msg("activation")
}
