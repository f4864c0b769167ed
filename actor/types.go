// Package actor implements a minimal local Actor runtime whose log output
// renders messages, headers and addresses through stringify.
package actor

import (
	"context"
	"time"

	"github.com/najoast/sngofmt/core"
)

// Envelope is a message in flight: routing header plus content tuple.
type Envelope struct {
	Header  core.MessageHeader
	Content core.Tuple
}

// Handler processes incoming messages for an Actor.
type Handler interface {
	// HandleMessage processes a single message.
	// It should return an error if processing fails.
	HandleMessage(ctx context.Context, env *Envelope) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, env *Envelope) error

// HandleMessage calls f.
func (f HandlerFunc) HandleMessage(ctx context.Context, env *Envelope) error {
	return f(ctx, env)
}

// State represents the current state of an Actor.
type State uint8

const (
	// StateIdle means the Actor is waiting for messages
	StateIdle State = iota

	// StateRunning means the Actor is processing a message
	StateRunning

	// StateStopping means the Actor is shutting down
	StateStopping

	// StateStopped means the Actor has been stopped
	StateStopped
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options contains configuration options for creating an Actor.
type Options struct {
	// MailboxSize sets the size of the Actor's message queue
	MailboxSize int

	// Name is a human-readable name for the Actor
	Name string

	// Timeout for message processing
	ProcessTimeout time.Duration
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		MailboxSize:    1000,
		Name:           "",
		ProcessTimeout: 30 * time.Second,
	}
}

// Stats contains runtime statistics for an Actor.
type Stats struct {
	// Ref of the Actor
	Ref core.ActorRef

	// Current state
	State State

	// Total messages processed
	MessagesProcessed uint64

	// Total messages whose handler failed
	MessagesFailed uint64

	// Messages currently in mailbox
	MailboxSize int

	// Time when Actor was created
	CreatedAt time.Time

	// Last message processing time
	LastMessageAt time.Time
}
