package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najoast/sngofmt/typeinfo"
)

type unannounced struct{ N int }

func TestNodeID(t *testing.T) {
	var zero NodeID
	assert.True(t, zero.IsZero())

	n := NewNodeID(7, "10.0.0.1:4040")
	assert.False(t, n.IsZero())
	assert.True(t, n.Equal(NodeID{ProcessID: 7, Host: "10.0.0.1:4040"}))
	assert.False(t, n.Equal(NewNodeID(8, "10.0.0.1:4040")))
}

func TestActorAddr(t *testing.T) {
	node := NewNodeID(1, "127.0.0.1:9000")
	addr := ActorAddr{ID: 3, Node: node}

	assert.True(t, addr.IsValid())
	assert.True(t, addr.IsLocal(node))
	assert.False(t, addr.IsLocal(NewNodeID(2, "127.0.0.1:9000")))
	assert.False(t, ActorAddr{}.IsValid())
	assert.True(t, ActorRef{Addr: addr}.IsValid())
}

func TestChannel(t *testing.T) {
	ref := ActorRef{Addr: ActorAddr{ID: 4}, Name: "gate"}
	g := Group{Module: "local", Identifier: "chat"}

	tests := []struct {
		name      string
		ch        Channel
		kind      ChannelKind
		wantActor bool
		wantGroup bool
	}{
		{"actor", ActorChannel(ref), ChannelActor, true, false},
		{"group", GroupChannel(g), ChannelGroup, false, true},
		{"zero", Channel{}, ChannelInvalid, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.ch.Kind())
			_, ok := tt.ch.Actor()
			assert.Equal(t, tt.wantActor, ok)
			_, ok = tt.ch.Group()
			assert.Equal(t, tt.wantGroup, ok)
		})
	}

	assert.Equal(t, "group", ChannelGroup.String())
}

func TestBox(t *testing.T) {
	o, err := Box(int32(5))
	require.NoError(t, err)
	assert.Equal(t, "@i32", o.Type().Name())
	assert.Equal(t, int32(5), o.Value())
	assert.False(t, o.Empty())

	_, err = Box(unannounced{N: 1})
	assert.ErrorIs(t, err, typeinfo.ErrTypeNotRegistered)

	assert.Panics(t, func() { MustBox(unannounced{}) })
}

func TestBoxAny(t *testing.T) {
	known := BoxAny(Atom("ok"))
	assert.Equal(t, NameAtom, known.Type().Name())

	unknown := BoxAny(unannounced{N: 2})
	assert.False(t, unknown.Type().Valid())
	assert.Equal(t, unannounced{N: 2}, unknown.Value())

	empty := BoxAny(nil)
	assert.True(t, empty.Empty())
}

func TestBoxNamed(t *testing.T) {
	r := typeinfo.NewRegistry()
	require.NoError(t, Announce(r))

	o, err := BoxNamed(r, NameAtom, Atom("pong"))
	require.NoError(t, err)
	assert.Equal(t, NameAtom, o.Type().Name())
	assert.Equal(t, Atom("pong"), o.Value())

	want, err := typeinfo.HandleOf[Atom](r)
	require.NoError(t, err)
	assert.Equal(t, want, o.Type())

	_, err = BoxNamed(r, "@missing", 1)
	assert.ErrorIs(t, err, typeinfo.ErrTypeNotRegistered)

	_, err = BoxNamed(r, NameAtom, "pong")
	assert.ErrorIs(t, err, typeinfo.ErrTypeMismatch)
}

func TestTupleIsImmutable(t *testing.T) {
	elems := []Object{MustBox(1), MustBox("a")}
	tup := NewTuple(elems...)
	elems[0] = MustBox(99)

	assert.Equal(t, 2, tup.Len())
	assert.Equal(t, 1, tup.At(0).Value())

	out := tup.Elements()
	out[1] = MustBox("z")
	assert.Equal(t, "a", tup.At(1).Value())
}

func TestAnnounceIsIdempotent(t *testing.T) {
	r := typeinfo.NewRegistry()
	require.NoError(t, Announce(r))
	require.NoError(t, Announce(r))

	h, err := typeinfo.HandleOf[ActorAddr](r)
	require.NoError(t, err)
	assert.Equal(t, NameAddr, h.Name())

	_, hasFormatter := r.FormatterFor(h)
	assert.False(t, hasFormatter)
}
