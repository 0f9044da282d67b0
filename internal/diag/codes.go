package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo            Code = 1000
	LexUnknownChar     Code = 1001
	LexUnknownFunction Code = 1002
	LexBadNumber       Code = 1003

	// Синтаксические
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpectOperand   Code = 2002
	SynUnclosedParen   Code = 2003
	SynUnmatchedParen  Code = 2004
	SynExpectLParen    Code = 2005
	SynExpectArgument  Code = 2006
	SynArity           Code = 2007
	SynEmptyFormula    Code = 2008
	SynTooDeep         Code = 2009

	// Ссылки на ячейки
	RefInfo          Code = 3000
	RefBadCoordinate Code = 3001
	RefOutOfRange    Code = 3002
	RefEmptyCell     Code = 3003
	RefCircular      Code = 3004

	// Типы значений ячеек
	TypeInfo           Code = 4000
	TypeNonNumericCell Code = 4001

	// Служебные
	ObsInfo    Code = 9000
	ObsTimings Code = 9001
)

// Kind groups codes into the error taxonomy surfaced by the formula package.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindLexical
	KindSyntax
	KindReference
	KindType
	KindCircular
	KindLimit
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindSyntax:
		return "syntax"
	case KindReference:
		return "reference"
	case KindType:
		return "type"
	case KindCircular:
		return "circular"
	case KindLimit:
		return "limit"
	default:
		return "unknown"
	}
}

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	LexInfo:            "Lexical information",
	LexUnknownChar:     "Unknown character",
	LexUnknownFunction: "Unknown function",
	LexBadNumber:       "Malformed number",
	SynInfo:            "Syntax information",
	SynUnexpectedToken: "Unexpected token",
	SynExpectOperand:   "Missing operand",
	SynUnclosedParen:   "Unclosed parenthesis",
	SynUnmatchedParen:  "Unmatched closing parenthesis",
	SynExpectLParen:    "Expected '(' after function name",
	SynExpectArgument:  "Missing function argument",
	SynArity:           "Wrong number of function arguments",
	SynEmptyFormula:    "Empty formula",
	SynTooDeep:         "Formula nesting too deep",
	RefInfo:            "Reference information",
	RefBadCoordinate:   "Malformed cell coordinate",
	RefOutOfRange:      "Cell reference outside the grid",
	RefEmptyCell:       "Referenced cell has no value",
	RefCircular:        "Circular cell reference",
	TypeInfo:           "Type information",
	TypeNonNumericCell: "Referenced cell is not numeric",
	ObsInfo:            "Observability information",
	ObsTimings:         "Phase timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("REF%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Kind maps the code onto the error taxonomy.
func (c Code) Kind() Kind {
	switch {
	case c == RefCircular:
		return KindCircular
	case c == SynTooDeep:
		return KindLimit
	case c >= 1000 && c < 2000:
		return KindLexical
	case c >= 2000 && c < 3000:
		return KindSyntax
	case c >= 3000 && c < 4000:
		return KindReference
	case c >= 4000 && c < 5000:
		return KindType
	}
	return KindUnknown
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
