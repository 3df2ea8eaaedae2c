package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/cobscan/internal/version"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display detailed version information for cobscan.

Shows version number, build commit, build date, Go version, and platform
information. Use --short to display only the version number.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Short())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Info())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only version number")

	return cmd
}
