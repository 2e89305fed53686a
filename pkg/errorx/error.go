package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) Kind() Code {
	return KindOf(e.Code)
}

// Is reports whether err carries the given code, either exactly or as its
// kind.
func Is(err error, code Code) bool {
	var e Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Code == code || e.Kind() == code
}

// Retryable reports whether the caller may retry the same request later.
func Retryable(err error) bool {
	return Is(err, ConcurrencyConflict) || Is(err, Unavailable)
}
