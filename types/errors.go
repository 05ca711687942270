package types

import (
	"errors"
	"fmt"
)

// RangeError reports a value whose instant or span cannot be represented
// by the target (time.Time, time.Duration, or the textual encoding).
//
// It is returned instead of a silently wrapped or clamped result.
type RangeError struct {
	Kind    string // "timestamp" or "duration"
	Seconds int64
	Nanos   int32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s out of range: seconds=%d nanos=%d", e.Kind, e.Seconds, e.Nanos)
}

// FormatError reports that a value could not be rendered as text.
// Cause is the underlying failure, often a *RangeError.
type FormatError struct {
	Kind  string
	Cause error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s: %v", e.Kind, e.Cause)
}

func (e *FormatError) Unwrap() error { return e.Cause }

// ParseError reports that Input is not a valid textual encoding.
// Cause carries the parser diagnostic unchanged.
type ParseError struct {
	Kind  string
	Input string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Kind, e.Input, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ShapeError reports a JSON token of the wrong kind, e.g. a number
// where a date string was expected.
type ShapeError struct {
	Expected string
	Got      string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s", e.Got, e.Expected)
}

// IsRange checks whether an error is a RangeError and returns it.
func IsRange(err error) (*RangeError, bool) {
	var r *RangeError
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsParse checks whether an error is a ParseError and returns it.
func IsParse(err error) (*ParseError, bool) {
	var p *ParseError
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

// IsShape checks whether an error is a ShapeError and returns it.
func IsShape(err error) (*ShapeError, bool) {
	var s *ShapeError
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
