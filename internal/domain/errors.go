package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation indicates the input failed a domain rule.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates a failed credential or signature check.
	ErrUnauthorized = errors.New("unauthorized")
)

type sentinelError struct {
	msg      string
	sentinel error
}

func (e *sentinelError) Error() string { return e.msg }

func (e *sentinelError) Unwrap() error { return e.sentinel }

// NotFound returns an error carrying msg that matches ErrNotFound under errors.Is.
func NotFound(msg string) error {
	return &sentinelError{msg: msg, sentinel: ErrNotFound}
}

// Validation returns an error carrying msg that matches ErrValidation under errors.Is.
func Validation(msg string) error {
	return &sentinelError{msg: msg, sentinel: ErrValidation}
}

// Unauthorized returns an error carrying msg that matches ErrUnauthorized under errors.Is.
func Unauthorized(msg string) error {
	return &sentinelError{msg: msg, sentinel: ErrUnauthorized}
}
