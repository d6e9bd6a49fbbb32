package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/logger"
	"github.com/mbourmaud/cabinet/internal/ui"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show the derived palette and contrast",
	Long: `Show the seven colors derived from the branding settings for a theme mode,
with the custom property each one is published as.

Examples:
  cabinet palette           # Light theme
  cabinet palette --dark    # Dark theme
  cabinet palette --json    # Machine-readable output`,
	RunE: runPalette,
}

var (
	paletteDark bool
	paletteJSON bool
)

func init() {
	rootCmd.AddCommand(paletteCmd)

	paletteCmd.Flags().BoolVar(&paletteDark, "dark", false, "Derive for the dark theme")
	paletteCmd.Flags().BoolVar(&paletteJSON, "json", false, "Output JSON")
}

type paletteOutput struct {
	Mode       string              `json:"mode"`
	Palette    branding.Palette    `json:"palette"`
	Properties []branding.Property `json:"properties"`
	Contrast   branding.Contrast   `json:"contrast"`
}

func runPalette(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := openBackend(ctx, appConfig)
	if err != nil {
		return err
	}
	defer b.close()

	store, err := newStore(appConfig, b.repo)
	if err != nil {
		return err
	}

	p := branding.NewService(store, nil, logger.Default()).Palette(ctx, paletteDark)
	out := cmd.OutOrStdout()

	if paletteJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(paletteOutput{
			Mode:       modeLabel(paletteDark),
			Palette:    p,
			Properties: p.Properties(),
			Contrast:   p.TextOnPrimary(),
		})
	}

	fmt.Fprint(out, ui.Header("🎨", fmt.Sprintf("Branding palette (%s)", modeLabel(paletteDark))))
	fmt.Fprintln(out)
	fmt.Fprint(out, ui.PaletteTable(p))
	fmt.Fprintln(out)
	fmt.Fprint(out, ui.Section("Text on primary", ui.ContrastLine(p)))
	return nil
}
