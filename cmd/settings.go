package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/settings"
	"github.com/mbourmaud/cabinet/internal/ui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read or change the branding settings",
	Long: `Read or change the branding colors stored in the configured settings
source (Redis, the settings API, or memory).

Examples:
  cabinet settings get
  cabinet settings set primary "#60A5FA"
  cabinet settings set              # Interactive`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the stored branding colors",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one branding color",
	Long: `Change one branding color. Without arguments the key and value are asked
interactively, and a confirmation is requested when the result would fall
below the WCAG AA contrast ratio.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSettingsSet,
}

var settingsSetYes bool

// Prompt hooks, replaced in tests.
var (
	promptSelect  = ui.PromptSelect
	promptDefault = ui.PromptDefault
	promptConfirm = ui.PromptConfirm
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsSetCmd.Flags().BoolVarP(&settingsSetYes, "yes", "y", false, "Skip the low-contrast confirmation")
}

// loadStored returns the stored colors. Never-saved settings read as the
// configured defaults.
func loadStored(ctx context.Context, repo settings.Repository) (branding.Colors, bool, error) {
	colors, err := repo.Load(ctx)
	if errors.Is(err, settings.ErrNotFound) {
		return appConfig.Branding.Defaults, false, nil
	}
	if err != nil {
		return branding.Colors{}, false, err
	}
	return colors.FillFrom(appConfig.Branding.Defaults), true, nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := openBackend(ctx, appConfig)
	if err != nil {
		return err
	}
	defer b.close()

	colors, stored, err := loadStored(ctx, b.repo)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	out := cmd.OutOrStdout()
	rows := [][]string{
		{string(branding.KeyPrimary), colors.Primary, ui.Swatch(colors.Primary, colors.Text, " Aa ")},
		{string(branding.KeyText), colors.Text, ui.Swatch(colors.Text, colors.Primary, " Aa ")},
	}
	fmt.Fprint(out, ui.Header("🎨", "Branding settings"))
	fmt.Fprintln(out)
	fmt.Fprint(out, ui.Table([]string{"Key", "Value", "Sample"}, rows))
	fmt.Fprintln(out)

	source := b.kind
	if !stored {
		source += " (nothing saved, showing defaults)"
	}
	fmt.Fprintf(out, "%s %s\n", ui.StyleDim.Render("Source:"), source)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := openBackend(ctx, appConfig)
	if err != nil {
		return err
	}
	defer b.close()

	colors, _, err := loadStored(ctx, b.repo)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	interactive := len(args) < 2

	var rawKey string
	if len(args) > 0 {
		rawKey = args[0]
	} else {
		options := make([]string, len(branding.Keys))
		for i, k := range branding.Keys {
			options[i] = string(k)
		}
		if rawKey, err = promptSelect("Color to change:", options); err != nil {
			return err
		}
	}

	key, err := branding.ParseKey(rawKey)
	if err != nil {
		return err
	}

	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		current, _ := colors.Get(key)
		if value, err = promptDefault(fmt.Sprintf("New %s color:", key), current, branding.ValidateColor); err != nil {
			return err
		}
	}

	if err := colors.Set(key, value); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := branding.Derive(colors, false)
	if c := p.TextOnPrimary(); !c.PassAA {
		fmt.Fprintln(out, ui.Warning(fmt.Sprintf("Text on primary contrast is %.2f:1, below %.1f:1", c.Ratio, branding.MinContrastAA)))
		if interactive && !settingsSetYes {
			ok, err := promptConfirm("Save anyway?", false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, ui.StyleDim.Render("Nothing saved."))
				return nil
			}
		}
	}

	if err := b.repo.Save(ctx, colors); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("%s set to %s", key, value)))
	fmt.Fprintf(out, "Text on primary: %s\n", ui.ContrastLine(p))
	return nil
}
