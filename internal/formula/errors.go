package formula

import (
	"errors"
	"fmt"

	"sheetcalc/internal/diag"
	"sheetcalc/internal/source"
)

// Sentinel is displayed in place of a value when a formula fails.
const Sentinel = "#INCORRECT_FORMULA"

// ErrIncorrectFormula is the uniform failure every *Error matches with errors.Is.
var ErrIncorrectFormula = errors.New("incorrect formula")

// Error describes why a formula failed. Kind is the coarse category, Code the
// exact diagnostic.
type Error struct {
	Kind diag.Kind
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error %s at %d:%d: %s", e.Kind, e.Code.ID(), e.Span.Start, e.Span.End, e.Msg)
}

// DiagCode returns the diagnostic the formula failed with.
func (e *Error) DiagCode() diag.Code {
	return e.Code
}

// Is makes every formula failure match ErrIncorrectFormula.
func (e *Error) Is(target error) bool {
	return target == ErrIncorrectFormula
}

func fromDiagnostic(d diag.Diagnostic) *Error {
	return &Error{
		Kind: d.Code.Kind(),
		Code: d.Code,
		Span: d.Primary,
		Msg:  d.Message,
	}
}

// KindOf returns the failure category of err, or diag.KindUnknown when err
// is not a formula error.
func KindOf(err error) diag.Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return diag.KindUnknown
}
