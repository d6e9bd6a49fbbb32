package hub

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/settings"
)

// handleGetSettings handles GET /settings/branding
func (h *Hub) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	colors, err := h.repo.Load(r.Context())
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		h.log.Warn("failed to load branding settings: %v", err)
		h.jsonError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, settings.Branding{Colors: colors})
}

// handlePutSettings handles PUT /settings/branding. A successful save
// invalidates the cache and re-applies both theme modes.
func (h *Hub) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var colors branding.Colors
	if err := json.NewDecoder(r.Body).Decode(&colors); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.repo.Save(r.Context(), colors); err != nil {
		status := validationStatus(err, http.StatusBadGateway)
		if status != http.StatusBadRequest {
			h.log.Warn("failed to save branding settings: %v", err)
		}
		h.jsonError(w, status, err.Error())
		return
	}

	h.store.Clear()
	h.ApplyAll(r.Context())

	h.eventHub.Broadcast(Event{
		Type: EventBrandingUpdated,
		Data: UpdatedEvent{Colors: colors},
	})
	h.jsonResponse(w, http.StatusOK, settings.Branding{Colors: colors})
}
