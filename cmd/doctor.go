package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/preflight"
	"github.com/mbourmaud/cabinet/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, settings source and color contrast",
	Long: `Run preflight checks before deploying the branding service:

  - the effective configuration is valid
  - the settings source (Redis or the settings API) answers
  - the stored colors and the configured defaults are readable (WCAG AA)`,
	Annotations: map[string]string{annotationLenientConfig: "true"},
	RunE:        runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	results := []preflight.CheckResult{
		preflight.CheckConfig(appConfig),
		preflight.CheckEnvFile(envPath),
	}

	if b, err := openBackend(ctx, appConfig); err != nil {
		results = append(results, preflight.CheckResult{Name: "Settings source", Message: err.Error()})
	} else {
		defer b.close()
		result, colors := preflight.CheckSettingsSource(ctx, b.repo, b.kind)
		results = append(results, result)
		if colors != (branding.Colors{}) {
			results = append(results, preflight.CheckContrast("Stored colors", colors.FillFrom(appConfig.Branding.Defaults)))
		}
	}

	results = append(results, preflight.CheckContrast("Default colors", appConfig.Branding.Defaults))

	out := cmd.OutOrStdout()
	if !preflight.PrintResults(out, results) {
		var failed []string
		for _, r := range results {
			if !r.Passed {
				failed = append(failed, r.Name+": "+r.Message)
			}
		}
		fmt.Fprint(out, ui.ErrorBox("Preflight checks failed", failed...))
		return fmt.Errorf("%d preflight check(s) failed", len(failed))
	}
	fmt.Fprint(out, ui.SuccessBox("All checks passed", "cabinet serve is ready to run"))
	return nil
}
