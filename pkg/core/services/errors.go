package services

import (
	"errors"
	"fmt"
)

var (
	ErrLinkNotFound      = errors.New("link not found")
	ErrInvalidURL        = errors.New("invalid url")
	ErrKeyspaceExhausted = errors.New("short code keyspace exhausted")
)

// ValidationError is returned when the input URL is empty or malformed.
// Nothing is mutated when it is returned.
type ValidationError struct {
	URL     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidURL }

// CodeGenerationError is returned when no free code was found
type CodeGenerationError struct {
	Attempts int
}

func (e *CodeGenerationError) Error() string {
	return fmt.Sprintf("could not generate a unique short code after %d attempts", e.Attempts)
}

func (e *CodeGenerationError) Unwrap() error { return ErrKeyspaceExhausted }

// PersistenceError wraps a failed write to durable storage.
// The in-memory change it belongs to has already been applied.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
