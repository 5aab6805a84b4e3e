package services

import (
	"errors"
	"fmt"

	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
)

// Kind classifies a service failure for the HTTP layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
)

// Error is a client-facing failure. Anything else returned by a service is
// an internal error.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func fieldError(field, msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: map[string]string{field: msg}}
}

func unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// IsKind reports whether err is a service Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

// storeError maps repository sentinels onto service errors. what names the
// entity for not-found messages, e.g. "Post".
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return notFound(what + " not found")
	case errors.Is(err, repositories.ErrDuplicate):
		return conflict(what + " already exists")
	}
	return fmt.Errorf("%s: %w", what, err)
}
