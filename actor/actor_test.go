package actor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najoast/sngofmt/core"
)

var testNode = core.NewNodeID(1, "a:1")

// syncBuffer lets the test read log output written by actor goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// recordingHandler forwards every message to a channel.
type recordingHandler struct {
	got chan *Envelope
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{got: make(chan *Envelope, 16)}
}

func (h *recordingHandler) HandleMessage(ctx context.Context, env *Envelope) error {
	h.got <- env
	return nil
}

func (h *recordingHandler) next(t *testing.T) *Envelope {
	t.Helper()
	select {
	case env := <-h.got:
		return env
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func addr(id core.ActorID) core.ActorAddr {
	return core.ActorAddr{ID: id, Node: testNode}
}

func envelopeTo(ref core.ActorRef, values ...any) *Envelope {
	return &Envelope{
		Header: core.MessageHeader{
			Sender:   addr(99),
			Receiver: core.ActorChannel(ref),
			ID:       1,
		},
		Content: core.TupleOf(values...),
	}
}

func TestNewActor(t *testing.T) {
	opts := DefaultOptions()
	opts.Name = "test-actor"

	a := NewActor(addr(1), newRecordingHandler(), opts, zerolog.Nop())

	assert.Equal(t, core.ActorRef{Addr: addr(1), Name: "test-actor"}, a.Ref())

	stats := a.Stats()
	assert.Equal(t, "test-actor", stats.Ref.Name)
	assert.Equal(t, StateIdle, stats.State)
	assert.True(t, stats.LastMessageAt.IsZero())
}

func TestActorStartStop(t *testing.T) {
	a := NewActor(addr(2), newRecordingHandler(), DefaultOptions(), zerolog.Nop())

	require.NoError(t, a.Start(context.Background()))
	require.NoError(t, a.Stop())

	assert.Equal(t, StateStopped, a.Stats().State)
	assert.Error(t, a.Stop())
}

func TestActorStartTwice(t *testing.T) {
	h := newRecordingHandler()
	a := NewActor(addr(8), h, DefaultOptions(), zerolog.Nop())

	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	err := a.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actor:8/1@a:1 is already started")

	// A single loop delivers each message exactly once
	require.NoError(t, a.Send(envelopeTo(a.Ref(), 1)))
	h.next(t)
	select {
	case env := <-h.got:
		t.Fatalf("unexpected second delivery: %+v", env)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestActorSend(t *testing.T) {
	h := newRecordingHandler()
	a := NewActor(addr(3), h, DefaultOptions(), zerolog.Nop())
	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	env := envelopeTo(a.Ref(), core.Atom("ping"), int32(1))
	require.NoError(t, a.Send(env))

	got := h.next(t)
	assert.Same(t, env, got)

	require.Eventually(t, func() bool {
		return a.Stats().MessagesProcessed == 1
	}, time.Second, 5*time.Millisecond)
	assert.False(t, a.Stats().LastMessageAt.IsZero())

	assert.Error(t, a.Send(nil))
}

func TestActorSendAfterStop(t *testing.T) {
	a := NewActor(addr(4), newRecordingHandler(), DefaultOptions(), zerolog.Nop())
	require.NoError(t, a.Start(context.Background()))
	require.NoError(t, a.Stop())

	err := a.Send(envelopeTo(a.Ref(), 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actor:4/1@a:1 is not running")
}

func TestActorMailboxFull(t *testing.T) {
	release := make(chan struct{})
	handler := HandlerFunc(func(ctx context.Context, env *Envelope) error {
		<-release
		return nil
	})

	opts := DefaultOptions()
	opts.MailboxSize = 1
	opts.Name = "slow"
	a := NewActor(addr(5), handler, opts, zerolog.Nop())

	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = a.Send(envelopeTo(a.Ref(), i))
	}
	close(release)

	require.Error(t, err)
	assert.Equal(t, "actor actor:5/1@a:1(slow) mailbox is full", err.Error())
}

func TestActorHandlerFailureIsLogged(t *testing.T) {
	var buf syncBuffer
	logger := zerolog.New(&buf)

	handler := HandlerFunc(func(ctx context.Context, env *Envelope) error {
		return errors.New("boom")
	})
	a := NewActor(addr(6), handler, DefaultOptions(), logger)
	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	require.NoError(t, a.Send(envelopeTo(a.Ref(), core.Atom("ping"))))

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "message handler failed")
	}, time.Second, 5*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, `"actor":"actor:6/1@a:1"`)
	assert.Contains(t, out, `"from":"actor:99/1@a:1"`)
	assert.Contains(t, out, `"to":"actor:6/1@a:1"`)
	assert.Contains(t, out, `"content":"@<>+@atom ( 'ping' )"`)
	assert.Contains(t, out, `"error_verbose":"errors.errorString: boom"`)
	assert.Equal(t, uint64(1), a.Stats().MessagesFailed)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopping", StateStopping.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(42).String())
}
