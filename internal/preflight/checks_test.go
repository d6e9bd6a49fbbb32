package preflight

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/config"
	"github.com/mbourmaud/cabinet/internal/settings"
)

type brokenRepository struct{}

func (brokenRepository) Load(ctx context.Context) (branding.Colors, error) {
	return branding.Colors{}, errors.New("dial tcp: connection refused")
}

func (brokenRepository) Save(ctx context.Context, colors branding.Colors) error {
	return errors.New("dial tcp: connection refused")
}

func TestCheckConfig(t *testing.T) {
	if result := CheckConfig(config.Default()); !result.Passed {
		t.Errorf("expected default config to pass, got %q", result.Message)
	}

	cfg := config.Default()
	cfg.Branding.StyleID = ""
	result := CheckConfig(cfg)
	if result.Passed {
		t.Error("expected check to fail for an empty style id")
	}
	if !strings.Contains(result.Message, "style_id") {
		t.Errorf("expected message to name the field, got %q", result.Message)
	}
}

func TestCheckEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")

	result := CheckEnvFile(path)
	if !result.Passed {
		t.Error("a missing .env is not a failure")
	}
	if !strings.Contains(result.Message, "not present") {
		t.Errorf("unexpected message %q", result.Message)
	}

	if err := os.WriteFile(path, []byte("CABINET_PORT=8080"), 0644); err != nil {
		t.Fatalf("failed to create .env: %v", err)
	}

	result = CheckEnvFile(path)
	if !result.Passed || result.Message != "loaded" {
		t.Errorf("expected loaded, got %+v", result)
	}
}

func TestCheckSettingsSource(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		repo   func() settings.Repository
		passed bool
		msg    string
	}{
		{
			name:   "nothing saved",
			repo:   func() settings.Repository { return settings.NewMemoryRepository() },
			passed: true,
			msg:    "nothing saved yet",
		},
		{
			name: "saved colors",
			repo: func() settings.Repository {
				r := settings.NewMemoryRepository()
				r.Save(ctx, branding.Colors{Primary: "#60A5FA", Text: "#000000"})
				return r
			},
			passed: true,
			msg:    "reachable",
		},
		{
			name:   "unreachable",
			repo:   func() settings.Repository { return brokenRepository{} },
			passed: false,
			msg:    "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := CheckSettingsSource(ctx, tt.repo(), "memory")
			if result.Passed != tt.passed {
				t.Errorf("expected passed=%v, got %+v", tt.passed, result)
			}
			if !strings.Contains(result.Message, tt.msg) {
				t.Errorf("expected message containing %q, got %q", tt.msg, result.Message)
			}
		})
	}
}

func TestCheckContrast(t *testing.T) {
	tests := []struct {
		name   string
		colors branding.Colors
		passed bool
	}{
		{"defaults", branding.DefaultColors, true},
		{"black on white", branding.Colors{Primary: "#ffffff", Text: "#000000"}, true},
		{"grey on grey", branding.Colors{Primary: "#777777", Text: "#888888"}, false},
		{"invalid", branding.Colors{Primary: "pink", Text: "#000000"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckContrast("Colors", tt.colors)
			if result.Passed != tt.passed {
				t.Errorf("expected passed=%v, got %+v", tt.passed, result)
			}
		})
	}
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer

	ok := PrintResults(&buf, []CheckResult{
		{Name: "Configuration", Passed: true, Message: "valid"},
		{Name: "Settings source", Passed: false, Message: "unreachable"},
	})

	if ok {
		t.Error("expected PrintResults to report a failure")
	}
	out := buf.String()
	for _, s := range []string{"Preflight Checks", "✓", "✗", "Configuration", "unreachable"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}
