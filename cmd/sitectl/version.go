package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/sitekit/version"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return err
			}
			return writeJSON(cmd.OutOrStdout(), version.Get())
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version string")
	return cmd
}
