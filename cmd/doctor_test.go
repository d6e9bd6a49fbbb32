package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbourmaud/cabinet/internal/branding"
)

func TestDoctorMemoryBackend(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "doctor")
	require.NoError(t, err)

	assert.Contains(t, out, "Preflight Checks")
	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "memory reachable, nothing saved yet")
	assert.Contains(t, out, "Default colors")
	assert.NotContains(t, out, "Stored colors")
	assert.Contains(t, out, "All checks passed")
}

func TestDoctorChecksStoredColors(t *testing.T) {
	isolate(t)
	srv := newSettingsServer(t, branding.Colors{Primary: "#777777", Text: "#888888"})
	t.Setenv("CABINET_SETTINGS_URL", srv.URL)

	out, err := executeCommand(t, "doctor")
	require.Error(t, err)

	assert.Contains(t, out, "api "+srv.URL+" reachable")
	assert.Contains(t, out, "Stored colors")
	assert.Contains(t, out, "below 4.5:1")
	assert.Contains(t, out, "Preflight checks failed")
	assert.Contains(t, err.Error(), "1 preflight check(s) failed")
}

func TestDoctorUnreachableRedis(t *testing.T) {
	isolate(t)
	t.Setenv("CABINET_REDIS_ADDR", "127.0.0.1:1")

	out, err := executeCommand(t, "doctor")
	require.Error(t, err)

	assert.Contains(t, out, "Settings source")
	assert.Contains(t, out, "✗")
}
