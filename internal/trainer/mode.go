package trainer

import (
	"fmt"
	"strings"
)

// Mode selects the update discipline.
type Mode int

const (
	// Batch averages the gradient over every example, then updates once per epoch.
	Batch Mode = iota
	// Online updates the parameters immediately after each example, in dataset order.
	Online
)

func (m Mode) String() string {
	switch m {
	case Batch:
		return "batch"
	case Online:
		return "online"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps "batch" or "online" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "batch":
		return Batch, nil
	case "online", "sgd":
		return Online, nil
	}
	return Batch, fmt.Errorf("unknown training mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if m != Batch && m != Online {
		return nil, fmt.Errorf("unknown training mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// State is the lifecycle position of a Trainer.
type State int

const (
	StateInitialized State = iota
	StateTraining
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateTraining:
		return "training"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}
