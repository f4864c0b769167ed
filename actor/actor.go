package actor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/najoast/sngofmt/core"
	"github.com/najoast/sngofmt/observability"
	"github.com/najoast/sngofmt/stringify"
)

// Actor represents a computational unit that processes messages sequentially.
// Each Actor runs in its own goroutine and communicates through channels.
type Actor interface {
	// Ref returns the reference of this Actor.
	Ref() core.ActorRef

	// Start begins the Actor's message processing loop.
	// It should be called only once per Actor instance.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the Actor.
	// It will finish processing the current message before stopping.
	Stop() error

	// Send puts a message into this Actor's mailbox.
	// It returns an error if the Actor is stopped or mailbox is full.
	Send(env *Envelope) error

	// Stats returns current runtime statistics for this Actor.
	Stats() Stats
}

// actor implements the Actor interface.
type actor struct {
	ref     core.ActorRef
	handler Handler
	logger  zerolog.Logger

	// Channel for receiving messages
	mailbox chan *Envelope

	// Context for controlling the Actor lifecycle
	ctx    context.Context
	cancel context.CancelFunc

	// Wait group for graceful shutdown
	wg sync.WaitGroup

	// Set once the message loop is running
	started int32

	// Atomic counters for statistics
	state             int32 // State
	messagesProcessed uint64
	messagesFailed    uint64
	createdAt         time.Time
	lastMessageAt     int64 // Unix nanoseconds

	opts Options
}

// NewActor creates a new Actor instance.
func NewActor(addr core.ActorAddr, handler Handler, opts Options, logger zerolog.Logger) Actor {
	ctx, cancel := context.WithCancel(context.Background())
	ref := core.ActorRef{Addr: addr, Name: opts.Name}

	a := &actor{
		ref:       ref,
		handler:   handler,
		logger:    observability.With(logger.With(), "actor", ref).Logger(),
		mailbox:   make(chan *Envelope, opts.MailboxSize),
		ctx:       ctx,
		cancel:    cancel,
		createdAt: time.Now(),
		opts:      opts,
	}

	atomic.StoreInt32(&a.state, int32(StateIdle))

	return a
}

// Ref returns the reference of this Actor.
func (a *actor) Ref() core.ActorRef {
	return a.ref
}

// Start begins the Actor's message processing loop.
func (a *actor) Start(ctx context.Context) error {
	currentState := State(atomic.LoadInt32(&a.state))
	if currentState != StateIdle || !atomic.CompareAndSwapInt32(&a.started, 0, 1) {
		return fmt.Errorf("actor %s is already started (state: %s)", stringify.Sprint(a.ref), currentState)
	}

	a.wg.Add(1)
	go a.messageLoop(ctx)

	return nil
}

// Stop gracefully shuts down the Actor.
func (a *actor) Stop() error {
	if !atomic.CompareAndSwapInt32(&a.state, int32(StateIdle), int32(StateStopping)) &&
		!atomic.CompareAndSwapInt32(&a.state, int32(StateRunning), int32(StateStopping)) {
		return fmt.Errorf("actor %s cannot be stopped from state %s",
			stringify.Sprint(a.ref), State(atomic.LoadInt32(&a.state)))
	}

	a.cancel()
	a.wg.Wait()

	atomic.StoreInt32(&a.state, int32(StateStopped))

	return nil
}

// Send puts a message into this Actor's mailbox.
func (a *actor) Send(env *Envelope) error {
	if env == nil {
		return fmt.Errorf("cannot send nil envelope")
	}

	currentState := State(atomic.LoadInt32(&a.state))
	if currentState == StateStopped || currentState == StateStopping {
		return fmt.Errorf("actor %s is not running (state: %s)", stringify.Sprint(a.ref), currentState)
	}

	select {
	case a.mailbox <- env:
		return nil
	case <-a.ctx.Done():
		return fmt.Errorf("actor %s is shutting down", stringify.Sprint(a.ref))
	default:
		return fmt.Errorf("actor %s mailbox is full", stringify.Sprint(a.ref))
	}
}

// Stats returns current runtime statistics for this Actor.
func (a *actor) Stats() Stats {
	lastMsg := atomic.LoadInt64(&a.lastMessageAt)
	var lastMessageAt time.Time
	if lastMsg > 0 {
		lastMessageAt = time.Unix(0, lastMsg)
	}

	return Stats{
		Ref:               a.ref,
		State:             State(atomic.LoadInt32(&a.state)),
		MessagesProcessed: atomic.LoadUint64(&a.messagesProcessed),
		MessagesFailed:    atomic.LoadUint64(&a.messagesFailed),
		MailboxSize:       len(a.mailbox),
		CreatedAt:         a.createdAt,
		LastMessageAt:     lastMessageAt,
	}
}

// messageLoop is the main processing loop for the Actor.
func (a *actor) messageLoop(parent context.Context) {
	defer a.wg.Done()

	for {
		select {
		case env := <-a.mailbox:
			a.processMessage(env)

		case <-parent.Done():
			a.cancel()
			a.drainMailbox()
			return

		case <-a.ctx.Done():
			a.drainMailbox()
			return
		}
	}
}

// processMessage handles a single message.
func (a *actor) processMessage(env *Envelope) {
	atomic.CompareAndSwapInt32(&a.state, int32(StateIdle), int32(StateRunning))
	defer atomic.CompareAndSwapInt32(&a.state, int32(StateRunning), int32(StateIdle))

	atomic.AddUint64(&a.messagesProcessed, 1)
	atomic.StoreInt64(&a.lastMessageAt, time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(a.ctx, a.opts.ProcessTimeout)
	defer cancel()

	observability.Str(a.logger.Trace(), "content", env.Content).Msg("processing message")

	if err := a.handler.HandleMessage(ctx, env); err != nil {
		atomic.AddUint64(&a.messagesFailed, 1)
		e := observability.Header(a.logger.Warn(), env.Header)
		e = observability.Str(e, "content", env.Content)
		observability.Err(e, err).Msg("message handler failed")
	}
}

// drainMailbox logs messages dropped during shutdown.
func (a *actor) drainMailbox() {
	for {
		select {
		case env := <-a.mailbox:
			e := observability.Header(a.logger.Debug(), env.Header)
			observability.Str(e, "content", env.Content).Msg("dropping message on shutdown")
		default:
			return
		}
	}
}
