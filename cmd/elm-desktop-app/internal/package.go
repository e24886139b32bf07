package internal

import (
	"github.com/spf13/cobra"
)

var packageCmd = &cobra.Command{
	Use:   "package [<directory>]",
	Short: "Build the desktop application and package it with electron-builder",
	Long: `Package builds the application and runs electron-builder for the
platforms from the configuration, all platforms by default.`,
	Args: dirArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		return s.pipeline.Package(s.trace, s.env)
	},
}

func init() {
	rootCmd.AddCommand(packageCmd)
}
