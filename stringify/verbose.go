package stringify

import (
	"fmt"
	"reflect"
)

// Verbose renders err as "<type>: <message>". The type is the uniform
// name when the error type was announced, the qualified Go name otherwise,
// and the raw %T form when no qualified name exists. Verbose never fails
// and never returns an empty string.
func (r *Renderer) Verbose(err error) string {
	if err == nil {
		return "<nil>"
	}

	name := r.errorTypeName(err)
	msg, ok := errorMessage(err)
	if !ok || msg == "" {
		return name
	}
	return name + ": " + msg
}

func (r *Renderer) errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	if name, ok := r.reg.NameOf(t); ok {
		return name
	}
	if name, ok := demangle(t); ok {
		return name
	}
	return fmt.Sprintf("%T", err)
}

// demangle returns the package-qualified name of t's base type, e.g.
// "io/fs.PathError" for *fs.PathError. Unnamed types have none.
func demangle(t reflect.Type) (string, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "", false
	}
	if t.PkgPath() == "" {
		return t.Name(), true
	}
	return t.PkgPath() + "." + t.Name(), true
}

// errorMessage calls err.Error(), which may panic on a nil receiver.
func errorMessage(err error) (msg string, ok bool) {
	defer func() {
		if recover() != nil {
			msg, ok = "", false
		}
	}()
	return err.Error(), true
}
