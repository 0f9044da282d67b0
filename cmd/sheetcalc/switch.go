package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the auto|on|off value shared by --color, --ui and the
// [output] color key of the project config.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

func (m switchMode) String() string {
	switch m {
	case switchOn:
		return "on"
	case switchOff:
		return "off"
	default:
		return "auto"
	}
}

// parseSwitch reads a switch value; name is the flag it came from and only
// shapes the error.
func parseSwitch(name, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on", "always":
		return switchOn, nil
	case "off", "never":
		return switchOff, nil
	default:
		return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
	}
}

// enabledFor resolves auto to true only when every file is a terminal.
func (m switchMode) enabledFor(files ...*os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	for _, f := range files {
		if !isTerminal(f) {
			return false
		}
	}
	return len(files) > 0
}
