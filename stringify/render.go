package stringify

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/najoast/sngofmt/typeinfo"
)

// View pairs a value with the handle of its type for a single call.
type View struct {
	value  any
	handle typeinfo.Handle
}

// NewView creates a view. The value must be of the type h describes.
func NewView(v any, h typeinfo.Handle) View {
	return View{value: v, handle: h}
}

// Options tune the rendered output.
type Options struct {
	// MaxTupleElements truncates tuples after this many elements, 0 for no limit
	MaxTupleElements int

	// UnregisteredMarker prefixes the marker OrMarker emits for unrenderable types
	UnregisteredMarker string
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		MaxTupleElements:   0,
		UnregisteredMarker: "unregistered",
	}
}

// Renderer dispatches values to the formatters of a registry.
type Renderer struct {
	reg  *typeinfo.Registry
	opts atomic.Pointer[Options]
}

// New creates a Renderer over reg.
func New(reg *typeinfo.Registry) *Renderer {
	r := &Renderer{reg: reg}
	opts := DefaultOptions()
	r.opts.Store(&opts)
	return r
}

// Registry returns the registry r dispatches through.
func (r *Renderer) Registry() *typeinfo.Registry {
	return r.reg
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return *r.opts.Load()
}

// SetOptions replaces the options. Safe to call while rendering.
func (r *Renderer) SetOptions(o Options) {
	if o.UnregisteredMarker == "" {
		o.UnregisteredMarker = DefaultOptions().UnregisteredMarker
	}
	r.opts.Store(&o)
}

// Render returns the output of the formatter registered for the view's
// handle.
func (r *Renderer) Render(v View) (string, error) {
	return r.Dispatch(v.handle, v.value)
}

// Dispatch implements typeinfo.Dispatcher.
func (r *Renderer) Dispatch(h typeinfo.Handle, v any) (string, error) {
	if !h.Valid() {
		return "", ErrInvalidHandle
	}

	f, ok := r.reg.FormatterFor(h)
	if !ok {
		return "", &UnregisteredTypeError{Handle: h, TypeName: h.Name()}
	}

	s, err := f(r, v)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", h.Name(), err)
	}
	return s, nil
}

// Of renders v through the formatter registered for T.
func Of[T any](r *Renderer, v T) (string, error) {
	h, err := typeinfo.HandleOf[T](r.reg)
	if err != nil {
		return "", err
	}
	return r.Render(NewView(v, h))
}

// Any renders v by its dynamic type. Types never announced are reported
// as unregistered rather than as a lookup failure, since the caller has
// no static knowledge of them.
func (r *Renderer) Any(v any) (string, error) {
	h, err := r.handleOf(v)
	if err != nil {
		return "", err
	}
	return r.Render(NewView(v, h))
}

// Sprint renders v by its dynamic type and never fails; see OrMarker.
func (r *Renderer) Sprint(v any) string {
	s, err := r.Any(v)
	return r.OrMarker(s, err)
}

// OrMarker returns s when err is nil and a diagnostic marker otherwise,
// e.g. "<unregistered:@point>". Meant for log lines.
func (r *Renderer) OrMarker(s string, err error) string {
	if err == nil {
		return s
	}

	var unreg *UnregisteredTypeError
	if errors.As(err, &unreg) {
		return "<" + r.Options().UnregisteredMarker + ":" + unreg.TypeName + ">"
	}
	return "<render-error: " + r.Verbose(err) + ">"
}

// handleOf resolves the handle of v's dynamic type.
func (r *Renderer) handleOf(v any) (typeinfo.Handle, error) {
	t := reflect.TypeOf(v)
	h, err := r.reg.HandleFor(t)
	if err != nil {
		name := "<nil>"
		if t != nil {
			name = t.String()
		}
		return typeinfo.Handle{}, &UnregisteredTypeError{TypeName: name}
	}
	return h, nil
}
