package report

import (
	"github.com/rs/zerolog"
)

// Logger writes each snapshot as one structured log line.
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a reporter writing to l.
func NewLogger(l zerolog.Logger) *Logger {
	return &Logger{log: l}
}

func (l *Logger) Report(s Snapshot) {
	ev := l.log.Info()
	if s.Done {
		ev = ev.Bool("done", true)
	}
	ev.Str("run", s.RunID.String()).
		Str("model", s.Model).
		Int("epoch", s.Epoch).
		Int("epochs", s.Epochs).
		Floats64("weights", s.Params.Weights).
		Float64("bias", s.Params.Bias).
		Float64("loss", s.Loss).
		Float64("examples_per_sec", s.Stats.ExamplesPerSec).
		Float64("epoch_ms", s.Stats.AvgEpochMS).
		Msg("training progress")
}
