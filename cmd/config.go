package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mbourmaud/cabinet/internal/config"
	"github.com/mbourmaud/cabinet/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or manage configuration",
	Long: `View and manage cabinet configuration.

Examples:
  cabinet config show        # Display the effective configuration
  cabinet config validate    # Validate cabinet.yaml and the environment
  cabinet config path        # Show config file paths
  cabinet config init        # Write a cabinet.yaml with the defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Current cabinet configuration:")
		fmt.Fprintln(out, "==============================")
		fmt.Fprintln(out)

		data, err := yaml.Marshal(appConfig)
		if err != nil {
			return fmt.Errorf("failed to format config: %w", err)
		}

		fmt.Fprintln(out, string(data))

		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(out, "Source: %s (plus CABINET_* overrides)\n", configPath)
		} else {
			fmt.Fprintf(out, "Source: defaults (no %s found, plus CABINET_* overrides)\n", configPath)
		}

		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:         "validate",
	Short:       "Validate the configuration",
	Annotations: map[string]string{annotationLenientConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validating configuration...")
		fmt.Fprintln(out)

		hasErrors := false

		if _, err := os.Stat(configPath); err == nil {
			if _, err := config.Load(configPath); err != nil {
				fmt.Fprint(out, ui.ProgressLine(configPath, "fail"))
				fmt.Fprintf(out, "    %s\n", err)
				hasErrors = true
			} else {
				fmt.Fprint(out, ui.ProgressLine(configPath, "ok"))
			}
		} else {
			fmt.Fprint(out, ui.ProgressLine(configPath, "not found (using defaults)"))
		}

		if _, err := os.Stat(envPath); err == nil {
			fmt.Fprint(out, ui.ProgressLine(envPath, "ok"))
		} else {
			fmt.Fprint(out, ui.ProgressLine(envPath, "not found"))
		}

		if err := appConfig.Validate(); err != nil {
			fmt.Fprint(out, ui.ProgressLine("effective configuration", "fail"))
			fmt.Fprintf(out, "    %s\n", err)
			hasErrors = true
		} else {
			fmt.Fprint(out, ui.ProgressLine("effective configuration", "ok"))
		}

		fmt.Fprintln(out)

		if hasErrors {
			return fmt.Errorf("configuration validation failed")
		}

		fmt.Fprintln(out, ui.Success("Configuration is valid!"))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Show configuration file paths",
	Annotations: map[string]string{annotationLenientConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		cwd, _ := os.Getwd()
		abs := func(p string) string {
			if filepath.IsAbs(p) {
				return p
			}
			return filepath.Join(cwd, p)
		}

		fmt.Fprintln(out, "Configuration file paths:")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Working directory: %s\n", cwd)
		fmt.Fprintf(out, "  cabinet.yaml:      %s\n", abs(configPath))
		fmt.Fprintf(out, "  .env:              %s\n", abs(envPath))
		fmt.Fprintln(out)
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a cabinet.yaml with the default values",
	Annotations: map[string]string{annotationLenientConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}

		if err := config.Default().Save(configPath); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success("Wrote "+configPath))
		fmt.Fprintln(out)
		fmt.Fprint(out, ui.NextSteps([]ui.Step{
			{Command: "cabinet config validate", Description: "check the file after editing"},
			{Command: "cabinet doctor", Description: "check the settings source and contrast"},
			{Command: "cabinet serve", Description: "start the hub"},
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
}
