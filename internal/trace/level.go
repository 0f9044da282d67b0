package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // driver spans and failed formulas, kept in the ring
	LevelPhase               // driver + pass boundaries
	LevelDetail              // plus one span per formula
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail)", s)
	}
}

// Allows reports whether ev is recorded at this level. LevelError keeps the
// end of every failed formula so that a dump shows what went wrong.
func (l Level) Allows(ev *Event) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError:
		return ev.Scope <= ScopePass || ev.Failed()
	case LevelPhase:
		return ev.Scope <= ScopePass
	case LevelDetail:
		return true
	}
	return false
}
