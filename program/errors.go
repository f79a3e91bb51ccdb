package program

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")

	// ErrUnmatchedBracket is matched by every *UnmatchedBracketError.
	ErrUnmatchedBracket = errors.New("unmatched bracket")
)

// ParseError reports an input field that is not an unsigned 32-bit decimal.
type ParseError struct {
	Index int // position of the field among the non-empty fields
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("input field %d %q: %v", e.Index, e.Field, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// UnmatchedBracketError reports a loop bracket without a partner.
type UnmatchedBracketError struct {
	Pos    int
	Symbol Command
}

func (e *UnmatchedBracketError) Error() string {
	if e.Symbol == LoopOpen {
		return fmt.Sprintf("unmatched '[' at position %d: missing ']'", e.Pos)
	}
	return fmt.Sprintf("unmatched ']' at position %d: no open loop", e.Pos)
}

func (e *UnmatchedBracketError) Is(target error) bool {
	return target == ErrUnmatchedBracket
}
