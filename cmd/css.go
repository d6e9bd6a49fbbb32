package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/logger"
	"github.com/mbourmaud/cabinet/internal/ui"
)

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the compiled branding stylesheet",
	Long: `Resolve the branding colors, run one apply cycle and print the resulting
stylesheet (custom properties plus overrides).

Examples:
  cabinet css                        # Light theme to stdout
  cabinet css --dark                 # Dark theme
  cabinet css --out public/brand.css # Write to a file`,
	RunE: runCSS,
}

var (
	cssDark bool
	cssOut  string
)

func init() {
	rootCmd.AddCommand(cssCmd)

	cssCmd.Flags().BoolVar(&cssDark, "dark", false, "Compile for the dark theme")
	cssCmd.Flags().StringVarP(&cssOut, "out", "o", "", "Write the stylesheet to a file instead of stdout")
}

func runCSS(cmd *cobra.Command, args []string) error {
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

	doc := branding.NewMemoryDocument()
	svc := branding.NewService(store, doc, logger.Default())
	svc.SetStyleID(appConfig.Branding.StyleID)
	svc.Apply(ctx, cssDark)

	css, ok := doc.Style(svc.StyleID())
	if !ok {
		return fmt.Errorf("branding stylesheet was not produced")
	}

	if cssOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), css)
		return nil
	}

	if err := os.WriteFile(cssOut, []byte(css), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cssOut, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Wrote %s stylesheet to %s", modeLabel(cssDark), cssOut)))
	return nil
}
