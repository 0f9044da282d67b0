package token

// Builtin names one of the formula functions.
type Builtin uint8

const (
	NoBuiltin Builtin = iota
	Abs
	Sqrt
	Round
	Pow
	Max
	Min
)

var builtinNames = [...]string{
	NoBuiltin: "",
	Abs:       "abs",
	Sqrt:      "sqrt",
	Round:     "round",
	Pow:       "pow",
	Max:       "max",
	Min:       "min",
}

var builtinByName = map[string]Builtin{
	"abs":   Abs,
	"sqrt":  Sqrt,
	"round": Round,
	"pow":   Pow,
	"max":   Max,
	"min":   Min,
}

// LookupBuiltin resolves a function name. Names are case-sensitive.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinByName[name]
	return b, ok
}

// Arity is the exact number of arguments the builtin takes.
func (b Builtin) Arity() int {
	switch b {
	case Abs, Sqrt, Round:
		return 1
	case Pow, Max, Min:
		return 2
	default:
		return 0
	}
}

func (b Builtin) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return "?"
}
