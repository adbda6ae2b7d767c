package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	projectDir string
	configPath string
	outputJSON bool

	flagDev            bool
	flagCI             bool
	flagTemplate       bool
	flagStarship       bool
	flagDockerOptimize bool
	flagNoProgress     bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devsetup",
		Short: "Provision project development dependencies",
		Long: "devsetup detects the host platform, verifies required tools and " +
			"installs what is missing through the available package channels.",
		RunE:          runSetup,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&projectDir, "project", "", "Path to project directory")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to devsetup.yaml (default: <project>/devsetup.yaml)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.Flags().BoolVar(&flagDev, "dev", false, "Include developer tooling")
	cmd.Flags().BoolVar(&flagCI, "ci", false, "Include continuous integration tooling")
	cmd.Flags().BoolVar(&flagTemplate, "template", false, "Include template test tooling")
	cmd.Flags().BoolVar(&flagStarship, "starship", false, "Install the starship prompt and write its preset")
	cmd.Flags().BoolVar(&flagDockerOptimize, "docker-optimize", false, "Purge package caches after installing, for slim images")
	cmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "Disable interactive progress output")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
