package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// EventType represents the type of event.
type EventType string

const (
	// Branding events
	EventBrandingApplied EventType = "branding.applied"
	EventBrandingUpdated EventType = "branding.updated"
	EventBrandingCleared EventType = "branding.cleared"

	// General
	EventConnected EventType = "connected"
)

// Event represents an event to be sent to clients.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// EventHub manages SSE connections and broadcasts events.
type EventHub struct {
	clients    map[chan Event]bool
	broadcast  chan Event
	register   chan chan Event
	unregister chan chan Event
	done       chan struct{}
	once       sync.Once
	mu         sync.RWMutex
}

// NewEventHub creates a new event hub.
func NewEventHub() *EventHub {
	return &EventHub{
		clients:    make(map[chan Event]bool),
		broadcast:  make(chan Event, 100),
		register:   make(chan chan Event),
		unregister: make(chan chan Event),
		done:       make(chan struct{}),
	}
}

// Run starts the event hub loop. It returns when ctx is cancelled, closing
// every subscriber channel.
func (h *EventHub) Run(ctx context.Context) {
	defer h.once.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				close(client)
				delete(h.clients, client)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client <- event:
				default:
					// Client buffer full, skip this event
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends an event to all connected clients.
func (h *EventHub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
		// Broadcast buffer full, drop event
	}
}

// Subscribe creates a new client subscription. After Run has returned the
// returned channel is already closed.
func (h *EventHub) Subscribe() chan Event {
	client := make(chan Event, 10)
	select {
	case h.register <- client:
	case <-h.done:
		close(client)
	}
	return client
}

// Unsubscribe removes a client subscription.
func (h *EventHub) Unsubscribe(client chan Event) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// handleEvents handles GET /events using Server-Sent Events.
func (h *Hub) handleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	client := h.eventHub.Subscribe()
	defer h.eventHub.Unsubscribe(client)

	colors, fetchedAt, cached := h.store.Cached()
	connected := map[string]interface{}{"cached": cached}
	if cached {
		connected["colors"] = colors
		connected["fetched_at"] = fetchedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	h.sendSSE(w, flusher, Event{Type: EventConnected, Data: connected})

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-client:
			if !ok {
				return
			}
			h.sendSSE(w, flusher, event)
		}
	}
}

// sendSSE sends an event in SSE format.
func (h *Hub) sendSSE(w http.ResponseWriter, flusher http.Flusher, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Warn("failed to encode event %s: %v", event.Type, err)
		return
	}

	fmt.Fprintf(w, "event: %s\n", event.Type)
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
