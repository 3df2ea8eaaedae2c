package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/cobscan/internal/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Write a default ` + config.ConfigFileName + ` to the current directory.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefaultConfig(config.ConfigFileName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.ConfigFileName)
			return nil
		},
	}

	return cmd
}
