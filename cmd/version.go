package cmd

import (
	"fmt"

	"github.com/egoavara/verify-structure/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "verify-structure %s\n", version.Version)
			if version.GitCommit != "" {
				fmt.Fprintf(out, "  commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "  built:  %s\n", version.BuildDate)
			}
		},
	}
}
