package internal

import (
	"git.fractalqb.de/fractalqb/elmdesk"
	"github.com/spf13/cobra"
)

var buildDot bool

var buildCmd = &cobra.Command{
	Use:   "build [<directory>]",
	Short: "Build the desktop application",
	Long: `Build compiles the Elm application together with the desktop glue into
elm-stuff/elm-desktop-app/app.`,
	Args: dirArg,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildDot, "dot", false,
		"write the build graph in Graphviz format and exit")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	if buildDot {
		prj, err := s.pipeline.Project()
		if err != nil {
			return err
		}
		dia := elmdesk.Diagrammer{RankDir: "LR"}
		return dia.WriteDot(cmd.OutOrStdout(), prj)
	}
	return s.pipeline.Build(s.trace, s.env)
}
