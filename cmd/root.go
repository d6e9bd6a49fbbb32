package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbourmaud/cabinet/internal/config"
	"github.com/mbourmaud/cabinet/internal/logger"
	"github.com/mbourmaud/cabinet/internal/ui"
)

// annotationLenientConfig marks commands that still run when cabinet.yaml
// cannot be parsed.
const annotationLenientConfig = "cabinet/lenient-config"

var (
	configPath string
	envPath    string
	appConfig  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cabinet",
	Short: "🎨 CABINET - practice branding service",
	Long: `CABINET - Apply a practice's brand colors to its web interface.

Two colors are configured per practice (primary and text); everything else in
the palette is derived from the light/dark theme.

Core Commands:
  serve            Run the branding hub (stylesheet, palette, settings, events)
  css              Print the compiled branding stylesheet
  palette          Show the derived palette and contrast

Settings:
  settings get     Show the stored branding colors
  settings set     Change a branding color
  config show      Display the effective configuration
  doctor           Check configuration, settings source and contrast`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(GetVersionString() + "\n")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "Path to cabinet.yaml")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "Path to a .env file")
}

// loadConfig resolves the effective configuration before any command runs and
// points the default logger at stderr so stdout stays clean for output.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(envPath); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		if cmd.Annotations[annotationLenientConfig] == "" {
			return err
		}
		// The command reports the problem itself.
		cfg = config.Default()
		if envErr := cfg.ApplyEnv(); envErr != nil {
			return envErr
		}
	}

	log := logger.Default()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(logger.ParseLevel(cfg.Log.Level))
	log.SetJSON(cfg.Log.JSON)

	appConfig = cfg
	return nil
}
