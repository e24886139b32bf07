package internal

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [<directory>]",
	Short: "Create an Elm application",
	Long: `Init runs 'elm init' in the directory unless it already has an elm.json.
Then it installs the package elm/json. All questions are answered with yes.`,
	Args: dirArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		return s.pipeline.Init(s.trace, s.env)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
