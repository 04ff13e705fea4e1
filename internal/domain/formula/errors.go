package formula

import (
	"errors"
	"fmt"
)

// ErrInvalidFormula matches every *Error via errors.Is.
var ErrInvalidFormula = errors.New("invalid formula")

type ErrorKind int

const (
	KindParse ErrorKind = iota + 1
	KindDisallowed
	KindUnknownVariable
	KindEvaluation
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindDisallowed:
		return "disallowed"
	case KindUnknownVariable:
		return "unknown_variable"
	case KindEvaluation:
		return "evaluation"
	}
	return "unknown"
}

// Error describes why a formula was rejected. Pos is the byte offset in the
// source where the problem was detected (-1 when not applicable).
type Error struct {
	Kind   ErrorKind
	Detail string
	Pos    int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindParse:
		return fmt.Sprintf("invalid formula: parse error: %s", e.Detail)
	case KindDisallowed:
		return fmt.Sprintf("invalid formula: disallowed construct: %s", e.Detail)
	case KindUnknownVariable:
		return fmt.Sprintf("invalid formula: unknown variable %s", e.Detail)
	default:
		return fmt.Sprintf("invalid formula: %s", e.Detail)
	}
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidFormula
}

func parseError(pos int, format string, args ...any) *Error {
	return &Error{Kind: KindParse, Detail: fmt.Sprintf(format, args...), Pos: pos}
}

func disallowed(pos int, what string) *Error {
	return &Error{Kind: KindDisallowed, Detail: what, Pos: pos}
}
