package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers can react without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAdmission
	KindInventory
	KindNotFound
	KindUnauthorized
)

type Error struct {
	Kind     Kind
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string, args ...any) *Error {
	return &Error{Kind: kind, Messages: []string{fmt.Sprintf(msg, args...)}}
}

func Validation(msg string, args ...any) *Error { return New(KindValidation, msg, args...) }

func Admission(msg string, args ...any) *Error { return New(KindAdmission, msg, args...) }

func Inventory(msg string, args ...any) *Error { return New(KindInventory, msg, args...) }

func NotFound(msg string, args ...any) *Error { return New(KindNotFound, msg, args...) }

func Unauthorized(msg string, args ...any) *Error { return New(KindUnauthorized, msg, args...) }

// Internal wraps an infrastructure failure. The original cause stays attached
// for logs; callers only see the opaque message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Messages: []string{"internal server error"}, Err: err}
}

// KindOf reports the classification of err, KindInternal for anything untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessagesOf returns the user-facing message list for err.
func MessagesOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Messages
	}
	return []string{"internal server error"}
}

// HTTPStatus maps a failure kind to the status code the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindAdmission, KindInventory:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
