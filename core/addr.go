package core

// ActorID represents a node-local identifier for an Actor.
type ActorID uint32

// InvalidActorID is never assigned to a running Actor.
const InvalidActorID ActorID = 0

// ActorAddr addresses an Actor without keeping it alive.
type ActorAddr struct {
	// ID is the node-local Actor ID
	ID ActorID

	// Node the Actor runs on
	Node NodeID
}

// IsValid reports whether the address points at an Actor.
func (a ActorAddr) IsValid() bool {
	return a.ID != InvalidActorID
}

// IsLocal reports whether the Actor lives on node.
func (a ActorAddr) IsLocal(node NodeID) bool {
	return a.Node.Equal(node)
}

// ActorRef is a handle to a (possibly named) Actor.
type ActorRef struct {
	// Addr of the referenced Actor
	Addr ActorAddr

	// Name is the service name (optional)
	Name string
}

// IsValid reports whether the reference points at an Actor.
func (r ActorRef) IsValid() bool {
	return r.Addr.IsValid()
}

// Group is a named multicast group managed by a group module.
type Group struct {
	// Module is the group module, e.g. "local" or "remote"
	Module string

	// Identifier names the group within its module
	Identifier string
}

// IsValid reports whether the group has a module and identifier.
func (g Group) IsValid() bool {
	return g.Module != "" && g.Identifier != ""
}

// ChannelKind tells what a Channel points at.
type ChannelKind uint8

const (
	// ChannelInvalid points at nothing
	ChannelInvalid ChannelKind = iota

	// ChannelActor points at a single Actor
	ChannelActor

	// ChannelGroup points at a multicast Group
	ChannelGroup
)

// String returns the string representation of ChannelKind.
func (k ChannelKind) String() string {
	switch k {
	case ChannelActor:
		return "actor"
	case ChannelGroup:
		return "group"
	default:
		return "invalid"
	}
}

// Channel is any message receiver: an Actor or a Group.
type Channel struct {
	kind  ChannelKind
	actor ActorRef
	group Group
}

// ActorChannel creates a Channel to a single Actor.
func ActorChannel(ref ActorRef) Channel {
	return Channel{kind: ChannelActor, actor: ref}
}

// GroupChannel creates a Channel to a Group.
func GroupChannel(g Group) Channel {
	return Channel{kind: ChannelGroup, group: g}
}

// Kind returns what the channel points at.
func (c Channel) Kind() ChannelKind {
	return c.kind
}

// Actor returns the referenced Actor if the channel points at one.
func (c Channel) Actor() (ActorRef, bool) {
	return c.actor, c.kind == ChannelActor
}

// Group returns the referenced Group if the channel points at one.
func (c Channel) Group() (Group, bool) {
	return c.group, c.kind == ChannelGroup
}
