package typeinfo

import (
	"reflect"
)

// entry is the registry-owned record behind a Handle.
type entry struct {
	id   uint32
	name string
	typ  reflect.Type
}

// Handle is an opaque runtime descriptor for a concrete type.
// Two handles compare equal iff they describe the same type in the same
// registry. The zero Handle is invalid.
type Handle struct {
	e *entry
}

// Valid reports whether h was issued by a registry.
func (h Handle) Valid() bool {
	return h.e != nil
}

// ID returns the registry-local numeric id, 0 for the zero handle.
func (h Handle) ID() uint32 {
	if h.e == nil {
		return 0
	}
	return h.e.id
}

// Name returns the uniform type name, e.g. "@i32".
func (h Handle) Name() string {
	if h.e == nil {
		return ""
	}
	return h.e.name
}

// Type returns the Go type the handle describes.
func (h Handle) Type() reflect.Type {
	if h.e == nil {
		return nil
	}
	return h.e.typ
}

// String returns the uniform name, or "<invalid>" for the zero handle.
func (h Handle) String() string {
	if h.e == nil {
		return "<invalid>"
	}
	return h.e.name
}

// Entry is a single (handle, formatter presence) record in a registry snapshot.
type Entry struct {
	ID           uint32
	Name         string
	Type         string
	HasFormatter bool
}
