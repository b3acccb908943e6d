package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrMismatch      = errors.New("reference mismatch")
	ErrInvalid       = errors.New("invalid payload")
	ErrUnknownAction = errors.New("unknown action")
	ErrCodeExhausted = errors.New("unable to generate a unique telegram code")

	ErrInvalidCode   = errors.New("invalid telegram code")
	ErrNotLinked     = errors.New("teacher account not linked")
	ErrPhoneNotFound = errors.New("parent phone not found")
)

// NotFoundError is returned when an action references an entity that does
// not exist. The state is left unchanged.
type NotFoundError struct {
	Kind string // "kindergarten", "branch", ...
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(kind, id string) error { return &NotFoundError{Kind: kind, ID: id} }

// MismatchError reports a child entity that belongs to a different parent
// than the one named in the payload, e.g. a branch of another kindergarten.
type MismatchError struct {
	Kind string
	ID   string
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s %q belongs to %q, not %q", e.Kind, e.ID, e.Got, e.Want)
}

func (e *MismatchError) Is(target error) bool { return target == ErrMismatch }

type ValidationError struct {
	Action Kind
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Sprintf("%s: invalid payload (%s)", e.Action, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

func (e *ValidationError) Unwrap() error { return e.Fields }
