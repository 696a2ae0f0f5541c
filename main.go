// Package main provides the sysoverview command-line tool, which prints a
// color-coded overview of the host: identity, boot time, CPU, memory, disk
// and network.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sysoverview/report"
	"sysoverview/sysinfo"
)

// newRootCmd builds the single command. It takes no arguments and no flags
// beyond cobra's built-in help.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "sysoverview",
		Short:         "Print a one-shot overview of this machine's system metrics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := report.DefaultOptions()
			opts.Out = cmd.OutOrStdout()
			return report.Run(cmd.Context(), sysinfo.NewHost(), opts)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		red := color.New(color.FgRed)
		red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
