// Package preflight runs environment checks before the branding service is
// deployed: configuration, settings source reachability and color contrast.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/config"
	"github.com/mbourmaud/cabinet/internal/settings"
	"github.com/mbourmaud/cabinet/internal/ui"
)

// CheckResult represents the result of a preflight check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// CheckConfig verifies the effective configuration
func CheckConfig(cfg *config.Config) CheckResult {
	result := CheckResult{Name: "Configuration"}

	if err := cfg.Validate(); err != nil {
		result.Passed = false
		result.Message = err.Error()
		return result
	}

	result.Passed = true
	result.Message = "valid"
	return result
}

// CheckEnvFile reports whether a .env file is present. The file is optional.
func CheckEnvFile(path string) CheckResult {
	result := CheckResult{Name: path, Passed: true}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		result.Message = "not present, using the process environment only"
		return result
	}

	result.Message = "loaded"
	return result
}

// CheckSettingsSource loads the stored colors once. Settings that were never
// saved pass; the store falls back to the defaults for them.
func CheckSettingsSource(ctx context.Context, repo settings.Repository, kind string) (CheckResult, branding.Colors) {
	result := CheckResult{Name: "Settings source"}

	colors, err := repo.Load(ctx)
	switch {
	case errors.Is(err, settings.ErrNotFound):
		result.Passed = true
		result.Message = fmt.Sprintf("%s reachable, nothing saved yet", kind)
		return result, branding.Colors{}
	case err != nil:
		result.Passed = false
		result.Message = fmt.Sprintf("%s: %v", kind, err)
		return result, branding.Colors{}
	}

	if err := colors.Validate(); err != nil {
		result.Passed = false
		result.Message = fmt.Sprintf("%s returned invalid colors (%v), those fields fall back to the defaults", kind, err)
		return result, colors
	}

	result.Passed = true
	result.Message = fmt.Sprintf("%s reachable", kind)
	return result, colors
}

// CheckContrast verifies the text color is readable on the primary color
func CheckContrast(name string, colors branding.Colors) CheckResult {
	result := CheckResult{Name: name}

	c := branding.Derive(colors, false).TextOnPrimary()
	if c.Ratio == 0 {
		result.Passed = false
		result.Message = "colors are not valid hex values"
		return result
	}

	result.Passed = c.PassAA
	if c.PassAA {
		result.Message = fmt.Sprintf("text on primary %.2f:1", c.Ratio)
	} else {
		result.Message = fmt.Sprintf("text on primary %.2f:1, below %.1f:1", c.Ratio, branding.MinContrastAA)
	}
	return result
}

// PrintResults displays check results and reports whether all passed
func PrintResults(w io.Writer, results []CheckResult) bool {
	allPassed := true

	fmt.Fprint(w, ui.Header("🔍", "Preflight Checks"))

	for _, r := range results {
		var status string
		if r.Passed {
			status = ui.StyleGreen.Render("✓")
		} else {
			status = ui.StyleRed.Render("✗")
			allPassed = false
		}

		name := ui.StyleBold.Render(r.Name)
		message := ui.StyleDim.Render(r.Message)
		fmt.Fprintf(w, "  %s %s: %s\n", status, name, message)
	}

	fmt.Fprintln(w)
	return allPassed
}
