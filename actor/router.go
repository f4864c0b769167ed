package actor

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/najoast/sngofmt/core"
	"github.com/najoast/sngofmt/observability"
	"github.com/najoast/sngofmt/stringify"
)

// ErrUndeliverable is returned when a message has no live receiver.
var ErrUndeliverable = errors.New("message undeliverable")

// Router manages Actor registration and message routing on one node.
type Router interface {
	// Register adds an Actor to the routing table.
	Register(actor Actor) error

	// Unregister removes an Actor from the routing table and all groups.
	Unregister(id core.ActorID) error

	// Join subscribes an Actor to a Group.
	Join(g core.Group, id core.ActorID) error

	// Leave unsubscribes an Actor from a Group.
	Leave(g core.Group, id core.ActorID)

	// Route delivers a message to its receiver channel.
	Route(env *Envelope) error

	// Lookup finds an Actor by its ID.
	Lookup(id core.ActorID) (Actor, bool)

	// List returns all registered Actor IDs in ascending order.
	List() []core.ActorID

	// NextID generates the next available Actor ID.
	NextID() core.ActorID

	// Node returns the node this Router serves.
	Node() core.NodeID
}

// router implements the Router interface.
type router struct {
	node   core.NodeID
	logger zerolog.Logger

	// Map of Actor ID to Actor instance
	actors sync.Map // map[core.ActorID]Actor

	mu     sync.RWMutex
	groups map[core.Group]map[core.ActorID]struct{}

	// Counter for generating unique Actor IDs
	idCounter uint32
}

// NewRouter creates a new Router instance for node.
func NewRouter(node core.NodeID, logger zerolog.Logger) Router {
	return &router{
		node:   node,
		logger: logger.With().Str("component", "router").Logger(),
		groups: make(map[core.Group]map[core.ActorID]struct{}),
	}
}

// Node returns the node this Router serves.
func (r *router) Node() core.NodeID {
	return r.node
}

// Register adds an Actor to the routing table.
func (r *router) Register(actor Actor) error {
	if actor == nil {
		return fmt.Errorf("cannot register nil actor")
	}

	addr := actor.Ref().Addr
	if !addr.IsLocal(r.node) {
		return fmt.Errorf("actor %s does not belong to node %s",
			stringify.Sprint(addr), stringify.NodeID(r.node))
	}

	if _, exists := r.actors.LoadOrStore(addr.ID, actor); exists {
		return fmt.Errorf("actor with ID %d already registered", addr.ID)
	}

	return nil
}

// Unregister removes an Actor from the routing table and all groups.
func (r *router) Unregister(id core.ActorID) error {
	if _, exists := r.actors.LoadAndDelete(id); !exists {
		return fmt.Errorf("actor with ID %d not found", id)
	}

	r.mu.Lock()
	for g, members := range r.groups {
		delete(members, id)
		if len(members) == 0 {
			delete(r.groups, g)
		}
	}
	r.mu.Unlock()

	return nil
}

// Join subscribes an Actor to a Group.
func (r *router) Join(g core.Group, id core.ActorID) error {
	if !g.IsValid() {
		return fmt.Errorf("cannot join %s", stringify.Sprint(g))
	}
	if _, exists := r.actors.Load(id); !exists {
		return fmt.Errorf("actor with ID %d not found", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[g]
	if !ok {
		members = make(map[core.ActorID]struct{})
		r.groups[g] = members
	}
	members[id] = struct{}{}

	return nil
}

// Leave unsubscribes an Actor from a Group.
func (r *router) Leave(g core.Group, id core.ActorID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.groups[g]; ok {
		delete(members, id)
		if len(members) == 0 {
			delete(r.groups, g)
		}
	}
}

// Route delivers a message to its receiver channel. Group messages are
// delivered to every member; the first delivery error is returned.
func (r *router) Route(env *Envelope) error {
	if env == nil {
		return fmt.Errorf("cannot route nil message")
	}

	switch env.Header.Receiver.Kind() {
	case core.ChannelActor:
		ref, _ := env.Header.Receiver.Actor()
		if !ref.Addr.IsLocal(r.node) {
			return r.deadLetter(env, "receiver is not local")
		}
		actor, exists := r.Lookup(ref.Addr.ID)
		if !exists {
			return r.deadLetter(env, "receiver not found")
		}
		return actor.Send(env)

	case core.ChannelGroup:
		g, _ := env.Header.Receiver.Group()
		members := r.members(g)
		if len(members) == 0 {
			return r.deadLetter(env, "group has no members")
		}
		var first error
		for _, id := range members {
			actor, exists := r.Lookup(id)
			if !exists {
				continue
			}
			if err := actor.Send(env); err != nil && first == nil {
				first = err
			}
		}
		return first

	default:
		return r.deadLetter(env, "invalid receiver")
	}
}

func (r *router) members(g core.Group) []core.ActorID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]core.ActorID, 0, len(r.groups[g]))
	for id := range r.groups[g] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *router) deadLetter(env *Envelope, reason string) error {
	e := observability.Header(r.logger.Warn(), env.Header)
	observability.Str(e, "content", env.Content).Str("reason", reason).Msg("dead letter")

	to, err := stringify.Channel(env.Header.Receiver)
	return fmt.Errorf("%w: %s: %s", ErrUndeliverable, stringify.Default().OrMarker(to, err), reason)
}

// Lookup finds an Actor by its ID.
func (r *router) Lookup(id core.ActorID) (Actor, bool) {
	if actor, exists := r.actors.Load(id); exists {
		return actor.(Actor), true
	}
	return nil, false
}

// List returns all registered Actor IDs in ascending order.
func (r *router) List() []core.ActorID {
	var ids []core.ActorID

	r.actors.Range(func(key, value interface{}) bool {
		ids = append(ids, key.(core.ActorID))
		return true
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// NextID generates the next available Actor ID.
func (r *router) NextID() core.ActorID {
	return core.ActorID(atomic.AddUint32(&r.idCounter, 1))
}
