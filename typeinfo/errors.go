package typeinfo

import (
	"errors"
	"fmt"
	"reflect"
)

// Registration errors
var (
	// ErrTypeNotRegistered is returned when a Go type was never announced.
	// It is a build or wiring defect, not a data problem.
	ErrTypeNotRegistered = errors.New("type not registered")

	ErrInvalidName   = errors.New("invalid uniform type name")
	ErrNameConflict  = errors.New("uniform type name conflict")
	ErrInvalidHandle = errors.New("invalid type handle")
	ErrTypeMismatch  = errors.New("value does not match handle type")
)

// TypeNotRegisteredError names the Go type that has no handle.
type TypeNotRegisteredError struct {
	Type reflect.Type
}

func (e *TypeNotRegisteredError) Error() string {
	return fmt.Sprintf("%s: %v", ErrTypeNotRegistered, e.Type)
}

func (e *TypeNotRegisteredError) Unwrap() error {
	return ErrTypeNotRegistered
}
