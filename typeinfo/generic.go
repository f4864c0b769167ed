package typeinfo

import (
	"fmt"
	"reflect"
)

// Announce creates the handle for T under name.
func Announce[T any](r *Registry, name string) (Handle, error) {
	return r.AnnounceType(reflect.TypeOf((*T)(nil)).Elem(), name)
}

// HandleOf returns T's handle, or a *TypeNotRegisteredError.
func HandleOf[T any](r *Registry) (Handle, error) {
	return r.HandleFor(reflect.TypeOf((*T)(nil)).Elem())
}

// MustHandleOf is like HandleOf but panics when T was never announced.
func MustHandleOf[T any](r *Registry) Handle {
	h, err := HandleOf[T](r)
	if err != nil {
		panic(err)
	}
	return h
}

// Register announces T and attaches a formatter that cannot fail.
func Register[T any](r *Registry, name string, fn func(T) string) (Handle, error) {
	return RegisterFunc(r, name, func(_ Dispatcher, v T) (string, error) {
		return fn(v), nil
	})
}

// RegisterFunc announces T and attaches a formatter that may fail or
// dispatch nested values.
func RegisterFunc[T any](r *Registry, name string, fn func(Dispatcher, T) (string, error)) (Handle, error) {
	h, err := Announce[T](r, name)
	if err != nil {
		return Handle{}, err
	}
	if err := r.SetFormatter(h, Typed(h, fn)); err != nil {
		return Handle{}, err
	}
	return h, nil
}

// Typed adapts a typed formatting function to a Formatter for h.
func Typed[T any](h Handle, fn func(Dispatcher, T) (string, error)) Formatter {
	return func(d Dispatcher, v any) (string, error) {
		tv, ok := v.(T)
		if !ok {
			return "", fmt.Errorf("%w: %s got %T", ErrTypeMismatch, h.Name(), v)
		}
		return fn(d, tv)
	}
}
