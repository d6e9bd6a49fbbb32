package hub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mbourmaud/cabinet/internal/branding"
)

// PaletteResponse represents a derived palette in API responses.
type PaletteResponse struct {
	Mode       string              `json:"mode"`
	Palette    branding.Palette    `json:"palette"`
	Properties []branding.Property `json:"properties"`
	Contrast   branding.Contrast   `json:"contrast"`
}

// ColorRequest represents a request to change one color.
type ColorRequest struct {
	Value string `json:"value"`
}

// ColorsResponse represents the current colors in API responses.
type ColorsResponse struct {
	Colors branding.Colors `json:"colors"`
}

// AppliedEvent is the payload of branding.applied.
type AppliedEvent struct {
	Mode     string            `json:"mode"`
	Primary  string            `json:"primary"`
	Text     string            `json:"text"`
	Contrast branding.Contrast `json:"contrast"`
}

// UpdatedEvent is the payload of branding.updated.
type UpdatedEvent struct {
	Key    string          `json:"key,omitempty"`
	Colors branding.Colors `json:"colors"`
}

func modeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// parseMode reads ?mode=light|dark. Missing means light.
func parseMode(r *http.Request) (bool, error) {
	switch mode := r.URL.Query().Get("mode"); mode {
	case "", "light":
		return false, nil
	case "dark":
		return true, nil
	default:
		return false, fmt.Errorf("mode must be light or dark, got %q", mode)
	}
}

// handleStylesheet handles GET /branding.css
func (h *Hub) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	dark, err := parseMode(r)
	if err != nil {
		h.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	t := h.theme(dark)
	t.service.Apply(r.Context(), dark)

	css, ok := t.doc.Style(h.config.StyleID)
	if !ok {
		h.jsonError(w, http.StatusServiceUnavailable, "branding not applied")
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, css)
}

// handlePalette handles GET /branding/palette
func (h *Hub) handlePalette(w http.ResponseWriter, r *http.Request) {
	dark, err := parseMode(r)
	if err != nil {
		h.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := h.theme(dark).service.Palette(r.Context(), dark)
	h.jsonResponse(w, http.StatusOK, PaletteResponse{
		Mode:       modeName(dark),
		Palette:    p,
		Properties: p.Properties(),
		Contrast:   p.TextOnPrimary(),
	})
}

// handleUpdateColor handles PUT /branding/colors/{key}
func (h *Hub) handleUpdateColor(w http.ResponseWriter, r *http.Request) {
	key, err := branding.ParseKey(r.PathValue("key"))
	if err != nil {
		h.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if err := h.light.service.UpdateColor(ctx, key, req.Value, false); err != nil {
		h.jsonError(w, validationStatus(err, http.StatusInternalServerError), err.Error())
		return
	}
	h.dark.service.Apply(ctx, true)

	colors, _, _ := h.store.Cached()
	h.eventHub.Broadcast(Event{
		Type: EventBrandingUpdated,
		Data: UpdatedEvent{Key: string(key), Colors: colors},
	})
	h.jsonResponse(w, http.StatusOK, ColorsResponse{Colors: colors})
}

// handleClearCache handles POST /branding/cache/clear
func (h *Hub) handleClearCache(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	h.eventHub.Broadcast(Event{Type: EventBrandingCleared, Data: map[string]string{"status": "cleared"}})
	h.ApplyAll(r.Context())

	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}
