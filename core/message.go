package core

import (
	"fmt"
	"reflect"

	"github.com/najoast/sngofmt/typeinfo"
)

// MessageID correlates requests and responses.
type MessageID uint64

// Priority defines the mailbox priority of a message.
type Priority uint8

const (
	// PriorityNormal messages are queued in arrival order
	PriorityNormal Priority = iota

	// PriorityHigh messages skip ahead of normal ones
	PriorityHigh
)

// String returns the string representation of Priority.
func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MessageHeader carries the routing information of a message.
type MessageHeader struct {
	// Sender of the message, invalid for anonymous sends
	Sender ActorAddr

	// Receiver is an Actor or a Group
	Receiver Channel

	// ID is used for request-response correlation
	ID MessageID

	// Priority of the message
	Priority Priority
}

// Atom is a short symbolic constant used as a message tag.
type Atom string

// Object boxes a value together with the runtime handle of its type.
// The box is never rendered itself; its payload is.
type Object struct {
	value any
	typ   typeinfo.Handle
}

// Box wraps v using T's handle from typeinfo.Default.
func Box[T any](v T) (Object, error) {
	return BoxIn(typeinfo.Default, v)
}

// BoxIn wraps v using T's handle from r.
func BoxIn[T any](r *typeinfo.Registry, v T) (Object, error) {
	h, err := typeinfo.HandleOf[T](r)
	if err != nil {
		return Object{}, fmt.Errorf("failed to box value: %w", err)
	}
	return Object{value: v, typ: h}, nil
}

// MustBox is like Box but panics when T was never announced.
func MustBox[T any](v T) Object {
	o, err := Box(v)
	if err != nil {
		panic(err)
	}
	return o
}

// BoxAny wraps a value whose type is only known at runtime, such as data
// decoded from a remote node. The handle is left unset when the dynamic
// type was never announced in typeinfo.Default.
func BoxAny(v any) Object {
	o := Object{value: v}
	if v == nil {
		return o
	}
	if h, err := typeinfo.Default.HandleFor(reflect.TypeOf(v)); err == nil {
		o.typ = h
	}
	return o
}

// BoxNamed wraps v using the handle announced in r under a uniform name,
// as carried by values decoded from another node. v's dynamic type must be
// the announced type.
func BoxNamed(r *typeinfo.Registry, name string, v any) (Object, error) {
	h, ok := r.HandleByName(name)
	if !ok {
		return Object{}, fmt.Errorf("failed to box value: %w: %s", typeinfo.ErrTypeNotRegistered, name)
	}
	if reflect.TypeOf(v) != h.Type() {
		return Object{}, fmt.Errorf("failed to box value: %w: %s got %T", typeinfo.ErrTypeMismatch, name, v)
	}
	return Object{value: v, typ: h}, nil
}

// Value returns the boxed payload.
func (o Object) Value() any {
	return o.value
}

// Type returns the payload's handle, invalid when unknown.
func (o Object) Type() typeinfo.Handle {
	return o.typ
}

// Empty reports whether the box holds nothing.
func (o Object) Empty() bool {
	return o.value == nil
}

// Tuple is an immutable ordered sequence of boxed values. It is the
// content of every message.
type Tuple struct {
	elems []Object
}

// NewTuple creates a tuple from boxed values.
func NewTuple(elems ...Object) Tuple {
	cp := make([]Object, len(elems))
	copy(cp, elems)
	return Tuple{elems: cp}
}

// TupleOf boxes each value with BoxAny.
func TupleOf(values ...any) Tuple {
	elems := make([]Object, len(values))
	for i, v := range values {
		elems[i] = BoxAny(v)
	}
	return Tuple{elems: elems}
}

// Len returns the number of elements.
func (t Tuple) Len() int {
	return len(t.elems)
}

// At returns the i-th element.
func (t Tuple) At(i int) Object {
	return t.elems[i]
}

// Elements returns a copy of the elements.
func (t Tuple) Elements() []Object {
	cp := make([]Object, len(t.elems))
	copy(cp, t.elems)
	return cp
}
