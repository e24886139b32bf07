package internal

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [<directory>]",
	Short: "Build and run the desktop application",
	Args:  dirArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		return s.pipeline.Run(s.trace, s.env)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
