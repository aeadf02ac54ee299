package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so the API boundary can map it to a
// status code without string matching.
type ErrorKind string

const (
	KindValidation  ErrorKind = "VALIDATION"
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindConflict    ErrorKind = "CONFLICT"
	KindConsistency ErrorKind = "CONSISTENCY"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a kinded domain error.
func Errorf(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapConsistency marks a partially failed multi-step operation. The wrapped
// cause is kept for logging; callers see a single failure.
func WrapConsistency(msg string, err error) error {
	return &Error{Kind: KindConsistency, Message: msg, Err: err}
}

func kindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsValidation(err error) bool  { return kindOf(err) == KindValidation }
func IsNotFound(err error) bool    { return kindOf(err) == KindNotFound }
func IsConflict(err error) bool    { return kindOf(err) == KindConflict }
func IsConsistency(err error) bool { return kindOf(err) == KindConsistency }
