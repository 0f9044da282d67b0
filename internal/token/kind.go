package token

// Kind represents the category of a formula token.
type Kind uint8

const (
	// Invalid marks the sticky failure token; the lexer returns it forever
	// after the first lexical, reference or type error.
	Invalid Kind = iota
	// EOF marks the end of the formula.
	EOF

	// Number is a numeric literal or a resolved cell reference.
	Number
	// Function is a recognised builtin name.
	Function

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	LParen // (
	RParen // )
	Comma  // ,
	// Symbol is any other single character; the parser rejects it.
	Symbol
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Number:   "Number",
	Function: "Function",
	Plus:     "Plus",
	Minus:    "Minus",
	Star:     "Star",
	Slash:    "Slash",
	LParen:   "LParen",
	RParen:   "RParen",
	Comma:    "Comma",
	Symbol:   "Symbol",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsSymbol reports whether k is a single-character punctuation or operator.
func (k Kind) IsSymbol() bool {
	return k >= Plus && k <= Symbol
}

// SymbolKind classifies a single byte.
func SymbolKind(b byte) Kind {
	switch b {
	case '+':
		return Plus
	case '-':
		return Minus
	case '*':
		return Star
	case '/':
		return Slash
	case '(':
		return LParen
	case ')':
		return RParen
	case ',':
		return Comma
	default:
		return Symbol
	}
}
