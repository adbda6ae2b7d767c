package cli

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the devsetup version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("devsetup " + Version)
		},
	}
	return cmd
}
