package main

import (
	"fmt"
	"strconv"
	"strings"

	"sheetcalc/internal/driver"
)

// argInputs turns command line arguments into formulas. An argument may carry
// a cell label ("B2: =$A1*2") just like a batch file line.
func argInputs(args []string) ([]driver.Input, error) {
	inputs := make([]driver.Input, 0, len(args))
	for i, arg := range args {
		parsed, err := driver.ReadFormulas(strings.NewReader(arg))
		if err != nil {
			return nil, err
		}
		if len(parsed) != 1 {
			return nil, fmt.Errorf("argument %d: expected exactly one formula, got %d", i+1, len(parsed))
		}
		in := parsed[0]
		if strings.HasPrefix(in.Label, "#") {
			in.Label = "#" + strconv.Itoa(i+1)
		}
		in.Line = 1
		inputs = append(inputs, in)
	}
	return inputs, nil
}
