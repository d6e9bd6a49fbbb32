package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbourmaud/cabinet/internal/ui"
)

// Build information, set with -ldflags at release time.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), GetVersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// GetVersionString formats the build information for display.
func GetVersionString() string {
	return fmt.Sprintf("%s %s %s",
		ui.StyleHeader.Render("cabinet"),
		ui.StyleBold.Render(Version),
		ui.StyleDim.Render(fmt.Sprintf("(commit %s, built %s)", GitCommit, BuildDate)),
	)
}
