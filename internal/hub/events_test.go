package hub

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mbourmaud/cabinet/internal/settings"
)

// streamRecorder is a ResponseWriter whose body can be read while a handler
// is still writing to it.
type streamRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   bytes.Buffer
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header)}
}

func (s *streamRecorder) Header() http.Header { return s.header }
func (s *streamRecorder) WriteHeader(int)     {}
func (s *streamRecorder) Flush()              {}

func (s *streamRecorder) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.body.Write(p)
}

func (s *streamRecorder) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.body.String()
}

// runEventHub starts h and returns a function that stops it and waits for Run
// to return.
func runEventHub(h *EventHub) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	return func() {
		cancel()
		<-done
	}
}

func TestEventHub_BroadcastReachesSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewEventHub()
	stop := runEventHub(h)
	defer stop()

	a := h.Subscribe()
	b := h.Subscribe()
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	h.Broadcast(Event{Type: EventBrandingCleared})

	for _, client := range []chan Event{a, b} {
		select {
		case ev := <-client:
			assert.Equal(t, EventBrandingCleared, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}

	h.Unsubscribe(a)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	_, open := <-a
	assert.False(t, open, "unsubscribed channel should be closed")
}

func TestEventHub_StopClosesClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewEventHub()
	stop := runEventHub(h)

	client := h.Subscribe()
	stop()

	_, open := <-client
	assert.False(t, open)
	assert.Equal(t, 0, h.ClientCount())

	// Neither call may block once the loop has exited.
	late := h.Subscribe()
	_, open = <-late
	assert.False(t, open)
	h.Unsubscribe(late)
}

func TestEventHub_BroadcastNeverBlocks(t *testing.T) {
	h := NewEventHub()
	for i := 0; i < 500; i++ {
		h.Broadcast(Event{Type: EventBrandingApplied})
	}
}

func TestHub_handleEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newTestHub(t, settings.NewMemoryRepository())
	stop := runEventHub(h.eventHub)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)
	w := newStreamRecorder()

	done := make(chan struct{})
	go func() {
		h.Handler().ServeHTTP(w, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return h.eventHub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	serve(h, "PUT", "/branding/colors/primary", []byte(`{"value":"#60A5FA"}`))

	require.Eventually(t, func() bool {
		body := w.String()
		return strings.Contains(body, "event: branding.updated") &&
			strings.Count(body, "event: branding.applied") >= 2
	}, time.Second, 5*time.Millisecond)

	body := w.String()
	assert.True(t, strings.HasPrefix(body, "event: connected\n"))
	assert.Contains(t, body, `"mode":"dark"`)
	assert.Contains(t, body, `"primary":"#60A5FA"`)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after the client went away")
	}
}
