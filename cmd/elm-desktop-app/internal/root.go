package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"git.fractalqb.de/fractalqb/elmdesk"
	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/elmdesk/glue"
	"github.com/spf13/cobra"
)

const usage = `Usage:
    elm-desktop-app init [<directory>]
    elm-desktop-app build [<directory>]
    elm-desktop-app run [<directory>]
    elm-desktop-app package [<directory>]

Options:
    directory: defaults to the current directory
`

var errUsage = errors.New("usage")

var (
	traceFlag  string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:           "elm-desktop-app",
	Short:         "Build Elm applications as Electron desktop applications",
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(*cobra.Command, []string) error {
		return errUsage
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		io.WriteString(cmd.OutOrStdout(), usage)
	})
	rootCmd.SetFlagErrorFunc(func(*cobra.Command, error) error { return errUsage })

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&traceFlag, "trace", "",
		"build trace `level`: off, warn, info or debug")
	pf.StringVar(&configFile, "config", "",
		"configuration `file`, default: <directory>/"+ConfigFile)
}

// Execute runs the command line of the process and returns its exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		io.WriteString(stdout, usage)
		return 0
	}
	fmt.Fprintf(stderr, "elm-desktop-app: %s\n", err)
	return elmdesk.ExitCode(err)
}

// dirArg accepts the optional project directory.
func dirArg(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	return nil
}

// session is everything a command needs to work on one project.
type session struct {
	pipeline *elmdesk.Pipeline
	trace    *elmdesk.Trace
	env      *elmdesk.Env
}

func newSession(cmd *cobra.Command, args []string) (*session, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	cfg, err := loadConfig(dir, configFile)
	if err != nil {
		return nil, err
	}

	tracer := elmdesk.DefaultTracer()
	tracer.W = cmd.ErrOrStderr()
	if err := tracer.ParseLogFlag(traceFlag); err != nil {
		return nil, err
	}

	l, err := elmdesk.NewLayout(dir, cfg.Entry)
	if err != nil {
		return nil, err
	}
	p := elmdesk.NewPipeline(l, elmdesk.Tools{Elm: cfg.Elm, Npm: cfg.Npm})
	if p.Platforms, err = elmdesk.ParsePlatforms(cfg.Platforms); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Target != "" {
		if p.Target, err = glue.ParseTarget(cfg.Target); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	p.SkipValidation = cfg.Validate != nil && !*cfg.Validate

	tr := deskkore.NewTrace(cmd.Context(), tracer)
	env := deskkore.DefaultEnv(tr)
	env.Out = cmd.OutOrStdout()
	env.Err = cmd.ErrOrStderr()
	return &session{pipeline: p, trace: tr, env: env}, nil
}
