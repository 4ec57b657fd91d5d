package usecase

import (
	"errors"
	"fmt"

	"planetarium-booking/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
)

// ValidationError is a request that failed field-level validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// OutOfRangeError is a row or seat outside the session's dome grid.
type OutOfRangeError struct {
	// Index is the position of the offending ticket in the request.
	Index int
	Field string
	Value int
	Bound string
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s number must be in available range: (1, %s): (1, %d)", e.Field, e.Bound, e.Max)
}

// ConflictError is a (session, row, seat) that already has a ticket.
type ConflictError struct {
	Index     int
	SessionID uuid.UUID
	Row       int
	Seat      int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seat already taken: row %d, seat %d in show session %s", e.Row, e.Seat, e.SessionID)
}

// ReferenceError is an identifier in the request that points nowhere.
type ReferenceError struct {
	Field string
	ID    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Field, e.ID)
}

type AlreadyExistsError struct {
	Resource string
	Field    string
	Value    string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

type AuthorizationError struct {
	Action string
}

func (e *AuthorizationError) Error() string {
	return "not allowed to " + e.Action
}
