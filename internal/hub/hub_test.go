package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/logger"
	"github.com/mbourmaud/cabinet/internal/settings"
)

// failingRepository fails every call.
type failingRepository struct{}

func (failingRepository) Load(ctx context.Context) (branding.Colors, error) {
	return branding.Colors{}, errors.New("redis: connection refused")
}

func (failingRepository) Save(ctx context.Context, colors branding.Colors) error {
	if err := colors.Validate(); err != nil {
		return err
	}
	return errors.New("redis: connection refused")
}

func newTestHub(t *testing.T, repo settings.Repository) *Hub {
	t.Helper()
	store := branding.NewStore(settings.Fetcher(repo), logger.NewNop())
	h, err := New(DefaultConfig(), store, repo, logger.NewNop())
	require.NoError(t, err)
	return h
}

func serve(h *Hub, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.Handler().ServeHTTP(w, req)
	return w
}

func TestNew(t *testing.T) {
	h := newTestHub(t, settings.NewMemoryRepository())

	assert.NotNil(t, h.light)
	assert.NotNil(t, h.dark)
	assert.NotSame(t, h.light.doc, h.dark.doc, "each mode needs its own document")
	assert.Same(t, h.light.service.Store(), h.dark.service.Store(), "modes share one store")
	assert.Equal(t, branding.StyleID, h.light.service.StyleID())
}

func TestNew_MissingDependencies(t *testing.T) {
	store := branding.NewStore(settings.Fetcher(settings.NewMemoryRepository()), logger.NewNop())

	_, err := New(DefaultConfig(), nil, settings.NewMemoryRepository(), nil)
	assert.Error(t, err)

	_, err = New(DefaultConfig(), store, nil, nil)
	assert.Error(t, err)
}

func TestHub_handleHealth(t *testing.T) {
	h := newTestHub(t, settings.NewMemoryRepository())

	w := serve(h, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["cached"])
}

func TestHub_Options(t *testing.T) {
	h := newTestHub(t, settings.NewMemoryRepository())

	w := serve(h, "OPTIONS", "/branding.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHub_handleStylesheet(t *testing.T) {
	repo := settings.NewMemoryRepository()
	require.NoError(t, repo.Save(context.Background(), branding.Colors{Primary: "#60A5FA", Text: "#ffffff"}))
	h := newTestHub(t, repo)

	light := serve(h, "GET", "/branding.css", nil)
	require.Equal(t, http.StatusOK, light.Code)
	assert.Equal(t, "text/css; charset=utf-8", light.Header().Get("Content-Type"))
	assert.Contains(t, light.Body.String(), "#60A5FA")
	assert.Contains(t, light.Body.String(), branding.LightNeutrals.Background)

	dark := serve(h, "GET", "/branding.css?mode=dark", nil)
	require.Equal(t, http.StatusOK, dark.Code)
	assert.Contains(t, dark.Body.String(), "#60A5FA")
	assert.Contains(t, dark.Body.String(), branding.DarkNeutrals.Background)

	again := serve(h, "GET", "/branding.css", nil)
	assert.Equal(t, light.Body.String(), again.Body.String(), "unchanged inputs give identical CSS")

	stored, ok := h.Stylesheet(true)
	require.True(t, ok)
	assert.Equal(t, dark.Body.String(), stored)
}

func TestHub_handleStylesheet_BadMode(t *testing.T) {
	h := newTestHub(t, settings.NewMemoryRepository())

	w := serve(h, "GET", "/branding.css?mode=sepia", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHub_handleStylesheet_FetchFailureServesDefaults(t *testing.T) {
	h := newTestHub(t, failingRepository{})

	w := serve(h, "GET", "/branding.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), branding.DefaultColors.Primary)
}

func TestHub_handlePalette(t *testing.T) {
	h := newTestHub(t, settings.NewMemoryRepository())

	w := serve(h, "GET", "/branding/palette?mode=dark", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaletteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "dark", resp.Mode)
	assert.True(t, resp.Palette.Dark)
	assert.Equal(t, branding.DefaultColors.Primary, resp.Palette.Primary)
	assert.Equal(t, branding.DarkNeutrals.CardBackground, resp.Palette.CardBackground)
	assert.Len(t, resp.Properties, len(branding.Slots))
	assert.Greater(t, resp.Contrast.Ratio, 1.0)
}

func TestHub_handleUpdateColor(t *testing.T) {
	h := newTestHub(t, settings.NewMemoryRepository())

	w := serve(h, "PUT", "/branding/colors/primary", []byte(`{"value":"#60A5FA"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ColorsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "#60A5FA", resp.Colors.Primary)
	assert.Equal(t, branding.DefaultColors.Text, resp.Colors.Text)

	for _, dark := range []bool{false, true} {
		css, ok := h.Stylesheet(dark)
		require.True(t, ok)
		assert.Contains(t, css, "#60A5FA", "mode %s should be re-applied", modeName(dark))
	}
}

func TestHub_handleUpdateColor_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"unknown key", "/branding/colors/accent", `{"value":"#60A5FA"}`},
		{"invalid color", "/branding/colors/text", `{"value":"dark grey"}`},
		{"trailing css", "/branding/colors/primary", `{"value":"#aabbcc; } body { display: none"}`},
		{"closing tag", "/branding/colors/primary", `{"value":"#ffffff</style>"}`},
		{"spaced pairs", "/branding/colors/text", `{"value":"#ff ff ff"}`},
		{"malformed body", "/branding/colors/text", `{"value":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHub(t, settings.NewMemoryRepository())
			w := serve(h, "PUT", tt.target, []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestHub_handleClearCache(t *testing.T) {
	repo := settings.NewMemoryRepository()
	h := newTestHub(t, repo)

	serve(h, "GET", "/branding.css", nil)
	require.NoError(t, repo.Save(context.Background(), branding.Colors{Primary: "#0EA5E9", Text: "#000000"}))

	stale := serve(h, "GET", "/branding.css", nil)
	assert.NotContains(t, stale.Body.String(), "#0EA5E9", "cache still fresh")

	w := serve(h, "POST", "/branding/cache/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)

	css, ok := h.Stylesheet(false)
	require.True(t, ok)
	assert.Contains(t, css, "#0EA5E9")
}

func TestHub_Settings(t *testing.T) {
	h := newTestHub(t, settings.NewMemoryRepository())

	empty := serve(h, "GET", "/settings/branding", nil)
	require.Equal(t, http.StatusOK, empty.Code)
	var before settings.Branding
	require.NoError(t, json.NewDecoder(empty.Body).Decode(&before))
	assert.Equal(t, branding.Colors{}, before.Colors)

	serve(h, "GET", "/branding.css", nil)

	put := serve(h, "PUT", "/settings/branding", []byte(`{"primary":"#60A5FA","text":"#111111"}`))
	require.Equal(t, http.StatusOK, put.Code)

	got := serve(h, "GET", "/settings/branding", nil)
	var after settings.Branding
	require.NoError(t, json.NewDecoder(got.Body).Decode(&after))
	assert.Equal(t, branding.Colors{Primary: "#60A5FA", Text: "#111111"}, after.Colors)

	css, ok := h.Stylesheet(true)
	require.True(t, ok)
	assert.Contains(t, css, "#60A5FA", "saving settings re-applies without waiting for the TTL")
}

func TestHub_Settings_Errors(t *testing.T) {
	h := newTestHub(t, failingRepository{})

	assert.Equal(t, http.StatusBadGateway, serve(h, "GET", "/settings/branding", nil).Code)
	assert.Equal(t, http.StatusBadGateway, serve(h, "PUT", "/settings/branding", []byte(`{"primary":"#60A5FA","text":"#111111"}`)).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "PUT", "/settings/branding", []byte(`{"primary":"blue","text":"#111111"}`)).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "PUT", "/settings/branding", []byte(`nope`)).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "PUT", "/settings/branding", []byte(`{"primary":"#aabbcc; } body { display: none","text":"#111111"}`)).Code)
}

func TestHub_Metrics(t *testing.T) {
	h := newTestHub(t, settings.NewMemoryRepository())
	serve(h, "GET", "/branding.css", nil)

	w := serve(h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "cabinet_branding_apply_total"), "apply counter should be exported")
	assert.Contains(t, body, "cabinet_branding_fetch_total")
}
