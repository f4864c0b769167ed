package stringify

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/najoast/sngofmt/core"
	"github.com/najoast/sngofmt/typeinfo"
)

// Placeholders for values that do not point at anything.
const (
	InvalidActor   = "<invalid-actor>"
	InvalidGroup   = "<invalid-group>"
	InvalidChannel = "<invalid-channel>"
	EmptyObject    = "<empty>"
)

// Message renders a message tuple, e.g. `@<>+@i32+@str ( 1, "hi" )`.
func (r *Renderer) Message(t core.Tuple) (string, error) {
	return Of(r, t)
}

// Header renders a message header.
func (r *Renderer) Header(h core.MessageHeader) (string, error) {
	return Of(r, h)
}

// Actor renders an actor reference.
func (r *Renderer) Actor(a core.ActorRef) (string, error) {
	return Of(r, a)
}

// Address renders an actor address.
func (r *Renderer) Address(a core.ActorAddr) (string, error) {
	return Of(r, a)
}

// Group renders a group reference.
func (r *Renderer) Group(g core.Group) (string, error) {
	return Of(r, g)
}

// Channel renders a channel.
func (r *Renderer) Channel(c core.Channel) (string, error) {
	return Of(r, c)
}

// Object renders the payload of o with the payload's own formatter.
func (r *Renderer) Object(o core.Object) (string, error) {
	if o.Empty() {
		return EmptyObject, nil
	}
	h, err := resolvePayload(r.reg, o)
	if err != nil {
		return "", err
	}
	return r.Render(NewView(o.Value(), h))
}

// Install announces the runtime types in reg and attaches their formatters.
func Install(reg *typeinfo.Registry) error {
	if err := core.Announce(reg); err != nil {
		return err
	}

	hAddr, err := typeinfo.HandleOf[core.ActorAddr](reg)
	if err != nil {
		return err
	}
	hActor, err := typeinfo.HandleOf[core.ActorRef](reg)
	if err != nil {
		return err
	}
	hGroup, err := typeinfo.HandleOf[core.Group](reg)
	if err != nil {
		return err
	}
	hChannel, err := typeinfo.HandleOf[core.Channel](reg)
	if err != nil {
		return err
	}

	steps := []func() error{
		attach(reg, func(_ typeinfo.Dispatcher, a core.Atom) (string, error) {
			return "'" + string(a) + "'", nil
		}),
		attach(reg, func(_ typeinfo.Dispatcher, n core.NodeID) (string, error) {
			return NodeID(n), nil
		}),
		attach(reg, func(_ typeinfo.Dispatcher, a core.ActorAddr) (string, error) {
			return formatAddr(a), nil
		}),
		attach(reg, func(d typeinfo.Dispatcher, a core.ActorRef) (string, error) {
			s, err := d.Dispatch(hAddr, a.Addr)
			if err != nil {
				return "", err
			}
			if a.Name != "" && a.IsValid() {
				s += "(" + a.Name + ")"
			}
			return s, nil
		}),
		attach(reg, func(_ typeinfo.Dispatcher, g core.Group) (string, error) {
			if !g.IsValid() {
				return InvalidGroup, nil
			}
			return "group:" + g.Module + "/" + g.Identifier, nil
		}),
		attach(reg, func(d typeinfo.Dispatcher, c core.Channel) (string, error) {
			if ref, ok := c.Actor(); ok {
				return d.Dispatch(hActor, ref)
			}
			if g, ok := c.Group(); ok {
				return d.Dispatch(hGroup, g)
			}
			return InvalidChannel, nil
		}),
		attach(reg, func(d typeinfo.Dispatcher, h core.MessageHeader) (string, error) {
			from, err := d.Dispatch(hAddr, h.Sender)
			if err != nil {
				return "", err
			}
			to, err := d.Dispatch(hChannel, h.Receiver)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("header(from=%s, to=%s, id=%d, prio=%s)", from, to, h.ID, h.Priority), nil
		}),
		attach(reg, func(d typeinfo.Dispatcher, t core.Tuple) (string, error) {
			return formatTuple(reg, d, t)
		}),
		attach(reg, func(d typeinfo.Dispatcher, o core.Object) (string, error) {
			if o.Empty() {
				return EmptyObject, nil
			}
			h, err := resolvePayload(reg, o)
			if err != nil {
				return "", err
			}
			return d.Dispatch(h, o.Value())
		}),
		attach(reg, func(_ typeinfo.Dispatcher, id core.ActorID) (string, error) {
			return strconv.FormatUint(uint64(id), 10), nil
		}),
		attach(reg, func(_ typeinfo.Dispatcher, id core.MessageID) (string, error) {
			return strconv.FormatUint(uint64(id), 10), nil
		}),
		attach(reg, func(_ typeinfo.Dispatcher, p core.Priority) (string, error) {
			return p.String(), nil
		}),
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func attach[T any](reg *typeinfo.Registry, fn func(typeinfo.Dispatcher, T) (string, error)) func() error {
	return func() error {
		h, err := typeinfo.HandleOf[T](reg)
		if err != nil {
			return err
		}
		return reg.SetFormatter(h, typeinfo.Typed(h, fn))
	}
}

func formatAddr(a core.ActorAddr) string {
	if !a.IsValid() {
		return InvalidActor
	}
	return "actor:" + strconv.FormatUint(uint64(a.ID), 10) + "/" + NodeID(a.Node)
}

// resolvePayload returns the box's handle, resolving it from the payload's
// dynamic type when the box was created without one.
func resolvePayload(reg *typeinfo.Registry, o core.Object) (typeinfo.Handle, error) {
	if h := o.Type(); h.Valid() {
		return h, nil
	}
	h, err := reg.HandleFor(reflect.TypeOf(o.Value()))
	if err != nil {
		return typeinfo.Handle{}, &UnregisteredTypeError{TypeName: fmt.Sprintf("%T", o.Value())}
	}
	return h, nil
}

// formatTuple renders `@<>+@t1+@t2 ( v1, v2 )`. Every element type must
// have a formatter even when the output is truncated, so a tuple either
// renders whole or fails.
func formatTuple(reg *typeinfo.Registry, d typeinfo.Dispatcher, t core.Tuple) (string, error) {
	limit := 0
	if o, ok := d.(interface{ Options() Options }); ok {
		limit = o.Options().MaxTupleElements
	}

	elems := t.Elements()
	handles := make([]typeinfo.Handle, len(elems))

	var sb strings.Builder
	sb.WriteString(core.NameTuple)
	for i, elem := range elems {
		sb.WriteByte('+')
		if elem.Empty() {
			sb.WriteString("@void")
			continue
		}
		h, err := resolvePayload(reg, elem)
		if err != nil {
			return "", err
		}
		if _, ok := reg.FormatterFor(h); !ok {
			return "", &UnregisteredTypeError{Handle: h, TypeName: h.Name()}
		}
		handles[i] = h
		sb.WriteString(h.Name())
	}

	sb.WriteString(" (")
	for i, elem := range elems {
		if i > 0 {
			sb.WriteByte(',')
		}
		if limit > 0 && i == limit {
			sb.WriteString(" ...")
			break
		}
		sb.WriteByte(' ')
		if elem.Empty() {
			sb.WriteString(EmptyObject)
			continue
		}
		s, err := d.Dispatch(handles[i], elem.Value())
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteString(" )")

	return sb.String(), nil
}
