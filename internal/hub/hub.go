// Package hub serves the practice branding over HTTP: the compiled stylesheet
// per theme mode, the derived palette, the settings endpoint and a live event
// stream of apply cycles.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/logger"
	"github.com/mbourmaud/cabinet/internal/settings"
)

// Config holds the hub configuration.
type Config struct {
	Port    int    `yaml:"port"`
	StyleID string `yaml:"style_id"`
}

// DefaultConfig returns the default hub configuration.
func DefaultConfig() Config {
	return Config{
		Port:    8080,
		StyleID: branding.StyleID,
	}
}

// theme pairs the service and document of one theme mode. Light and dark
// never share a document so their applies cannot overwrite each other.
type theme struct {
	dark    bool
	service *branding.Service
	doc     *branding.MemoryDocument
}

// Hub is the branding server.
type Hub struct {
	config   Config
	store    *branding.Store
	repo     settings.Repository
	light    *theme
	dark     *theme
	server   *http.Server
	eventHub *EventHub
	log      *logger.Logger
}

// New creates a hub. The store is shared by both theme modes; repo backs the
// /settings/branding endpoint.
func New(cfg Config, store *branding.Store, repo settings.Repository, log *logger.Logger) (*Hub, error) {
	if store == nil {
		return nil, fmt.Errorf("branding store is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("settings repository is required")
	}
	if cfg.StyleID == "" {
		cfg.StyleID = branding.StyleID
	}
	if log == nil {
		log = logger.Default()
	}

	h := &Hub{
		config:   cfg,
		store:    store,
		repo:     repo,
		eventHub: NewEventHub(),
		log:      log.WithField("component", "hub"),
	}
	h.light = h.newTheme(false)
	h.dark = h.newTheme(true)
	return h, nil
}

func (h *Hub) newTheme(dark bool) *theme {
	doc := branding.NewMemoryDocument()
	svc := branding.NewService(h.store, doc, h.log)
	svc.SetStyleID(h.config.StyleID)
	svc.OnApply(func(p branding.Palette) {
		h.eventHub.Broadcast(Event{
			Type: EventBrandingApplied,
			Data: AppliedEvent{
				Mode:     modeName(p.Dark),
				Primary:  p.Primary,
				Text:     p.Text,
				Contrast: p.TextOnPrimary(),
			},
		})
	})
	return &theme{dark: dark, service: svc, doc: doc}
}

func (h *Hub) theme(dark bool) *theme {
	if dark {
		return h.dark
	}
	return h.light
}

// Handler returns the hub's routes wrapped in the common middleware.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()

	// Branding endpoints
	mux.HandleFunc("GET /branding.css", h.handleStylesheet)
	mux.HandleFunc("GET /branding/palette", h.handlePalette)
	mux.HandleFunc("PUT /branding/colors/{key}", h.handleUpdateColor)
	mux.HandleFunc("POST /branding/cache/clear", h.handleClearCache)

	// Settings endpoints
	mux.HandleFunc("GET /settings/branding", h.handleGetSettings)
	mux.HandleFunc("PUT /settings/branding", h.handlePutSettings)

	// Event stream
	mux.HandleFunc("GET /events", h.handleEvents)

	// Status endpoints
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return h.withMiddleware(mux)
}

// Start starts the hub server. Both theme modes are applied before the
// listener opens.
func (h *Hub) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", h.config.Port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go h.eventHub.Run(ctx)

	h.ApplyAll(ctx)
	h.log.Info("hub listening on :%d", h.config.Port)
	return h.server.ListenAndServe()
}

// Stop gracefully stops the hub server.
func (h *Hub) Stop(ctx context.Context) error {
	if h.server != nil {
		return h.server.Shutdown(ctx)
	}
	return nil
}

// ApplyAll runs an apply cycle for both theme modes.
func (h *Hub) ApplyAll(ctx context.Context) {
	h.light.service.Apply(ctx, false)
	h.dark.service.Apply(ctx, true)
}

// Store returns the shared branding store.
func (h *Hub) Store() *branding.Store {
	return h.store
}

// Events returns the event hub.
func (h *Hub) Events() *EventHub {
	return h.eventHub
}

// Stylesheet returns the last stylesheet written for a theme mode.
func (h *Hub) Stylesheet(dark bool) (string, bool) {
	return h.theme(dark).doc.Style(h.config.StyleID)
}

// handleHealth handles GET /health
func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, fetchedAt, cached := h.store.Cached()
	resp := map[string]interface{}{
		"status":  "ok",
		"cached":  cached,
		"clients": h.eventHub.ClientCount(),
	}
	if cached {
		resp["fetched_at"] = fetchedAt.UTC().Format(time.RFC3339)
	}
	h.jsonResponse(w, http.StatusOK, resp)
}

// withMiddleware adds common middleware to all requests.
func (h *Hub) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		// Content-Type for JSON responses
		w.Header().Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}

// JSON response helpers
func (h *Hub) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Warn("failed to encode response: %v", err)
	}
}

func (h *Hub) jsonError(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// validationStatus maps branding validation errors to 400 and everything
// else to fallback.
func validationStatus(err error, fallback int) int {
	if errors.Is(err, branding.ErrInvalidColor) || errors.Is(err, branding.ErrUnknownKey) {
		return http.StatusBadRequest
	}
	return fallback
}
