package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrInvalidRange
	ErrSlotConflict
	ErrTransaction
)

// Interval carries the conflicting time window of a rejected booking.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AppError represents an application error
type AppError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Conflict *Interval `json:"conflict,omitempty"`
	Err      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// As unwraps err into an *AppError if possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// Error constructors

func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func NewUnauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

// NewInvalidRange reports a malformed availability range (start >= end).
func NewInvalidRange(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidRange,
		Message: message,
	}
}

// NewSlotConflict reports a booking that overlaps an existing non-terminal
// booking for the same doctor. The conflicting interval is kept so the caller
// can explain the rejection.
func NewSlotConflict(start, end time.Time) *AppError {
	return &AppError{
		Code: ErrSlotConflict,
		Message: fmt.Sprintf("requested time overlaps an existing booking from %s to %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339)),
		Conflict: &Interval{Start: start, End: end},
	}
}

// NewTransaction reports a failed atomic operation. The store rolled back, so
// the caller should treat stored state as unchanged.
func NewTransaction(operation string, err error) *AppError {
	return &AppError{
		Code:    ErrTransaction,
		Message: fmt.Sprintf("%s failed and was rolled back", operation),
		Err:     err,
	}
}
