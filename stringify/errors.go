package stringify

import (
	"errors"
	"fmt"

	"github.com/najoast/sngofmt/typeinfo"
)

// Rendering errors
var (
	// ErrUnregisteredType is returned when a value's runtime type has no
	// formatter. It is recoverable: values received from other nodes may
	// carry types this process cannot render.
	ErrUnregisteredType = errors.New("no formatter for type")

	// ErrInvalidHandle is returned when a View carries the zero handle.
	ErrInvalidHandle = typeinfo.ErrInvalidHandle
)

// UnregisteredTypeError names the type that could not be rendered.
// Handle is invalid when the type was never announced at all.
type UnregisteredTypeError struct {
	Handle   typeinfo.Handle
	TypeName string
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("%s %s", ErrUnregisteredType, e.TypeName)
}

func (e *UnregisteredTypeError) Unwrap() error {
	return ErrUnregisteredType
}
