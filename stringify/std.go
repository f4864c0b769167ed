package stringify

import (
	"github.com/najoast/sngofmt/core"
	"github.com/najoast/sngofmt/typeinfo"
)

var std = New(typeinfo.Default)

func init() {
	if err := Install(typeinfo.Default); err != nil {
		panic(err)
	}
}

// Default returns the Renderer over typeinfo.Default used by the
// package-level functions.
func Default() *Renderer {
	return std
}

// Render renders v through the formatter registered for T.
func Render[T any](v T) (string, error) {
	return Of(std, v)
}

// RenderView renders a type-erased view.
func RenderView(v View) (string, error) {
	return std.Render(v)
}

// Any renders v by its dynamic type.
func Any(v any) (string, error) {
	return std.Any(v)
}

// Sprint renders v by its dynamic type, substituting a marker on failure.
func Sprint(v any) string {
	return std.Sprint(v)
}

// Message renders a message tuple.
func Message(t core.Tuple) (string, error) {
	return std.Message(t)
}

// Header renders a message header.
func Header(h core.MessageHeader) (string, error) {
	return std.Header(h)
}

// Actor renders an actor reference.
func Actor(a core.ActorRef) (string, error) {
	return std.Actor(a)
}

// Address renders an actor address.
func Address(a core.ActorAddr) (string, error) {
	return std.Address(a)
}

// Group renders a group reference.
func Group(g core.Group) (string, error) {
	return std.Group(g)
}

// Channel renders a channel.
func Channel(c core.Channel) (string, error) {
	return std.Channel(c)
}

// Object renders the payload of a boxed value.
func Object(o core.Object) (string, error) {
	return std.Object(o)
}

// Verbose renders an error with its type name.
func Verbose(err error) string {
	return std.Verbose(err)
}
