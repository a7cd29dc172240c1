package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/liveline/internal/config"
	"github.com/rileyhilliard/liveline/internal/errors"
	"github.com/rileyhilliard/liveline/internal/exec"
	"github.com/rileyhilliard/liveline/internal/logger"
	"github.com/rileyhilliard/liveline/internal/ui"
)

// app carries the streams and overrides a root command is built with.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	log        logger.Logger
	loaderOpts []config.LoaderOption
	termOpts   []ui.TerminalOption
}

// rootFlags are the flags that don't map onto a config key.
type rootFlags struct {
	label        string
	configPath   string
	printConfig  bool
	noForceColor bool
}

func newRootCmd(a *app) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "liveline [flags] <command> [args...]",
		Short: "Run a command and show its output on one live line",
		Long: `Run a command and show its latest output line on a single line that
keeps updating in place. Long lines are cut to the terminal width without
breaking colors. When the command fails, its full output is printed.

Examples:
  liveline make
  liveline --label deps npm install
  liveline -- cargo build --release`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, flags)
		},
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetVersionTemplate(versionTemplate())

	f := cmd.Flags()
	f.SetInterspersed(false)
	f.StringVarP(&flags.label, "label", "l", "", "status label (default: derived from the command)")
	f.StringVar(&flags.configPath, "config", "", "config file (default: .liveline.yaml, then ~/.config/liveline/config.yaml)")
	f.BoolVar(&flags.printConfig, "print-config", false, "print the effective config as YAML and exit")
	f.BoolVar(&flags.noForceColor, "no-force-color", false, "don't ask the command to emit color")
	f.Int("width", 80, "width to assume when the terminal size is unknown")
	f.Int("margin", 0, "columns to keep free at the right edge")
	f.String("ellipsis", "", "marker for truncated lines, e.g. \"…\"")
	f.Bool("summary", false, "print a summary line when the command succeeds")
	f.Bool("hide-cursor", true, "hide the cursor while the command runs")

	return cmd
}

// flagKeys maps flags onto the config keys they override.
var flagKeys = map[string]string{
	"width":       config.KeyWidth,
	"margin":      config.KeyMargin,
	"ellipsis":    config.KeyEllipsis,
	"summary":     config.KeySummary,
	"hide-cursor": config.KeyHideCursor,
}

func (a *app) loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	opts := append([]config.LoaderOption{config.WithLogger(a.log)}, a.loaderOpts...)
	loader := config.NewLoader(opts...)

	v := loader.Viper()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig, "Couldn't bind --"+name, "")
		}
	}
	if flags.noForceColor {
		v.Set(config.KeyForceColor, false)
	}

	return loader.Load(flags.configPath)
}

func (a *app) run(cmd *cobra.Command, args []string, flags rootFlags) error {
	cfg, err := a.loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	if flags.printConfig {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	if len(args) == 0 {
		return errors.New(errors.ErrUsage,
			"What should I run?",
			"Usage: liveline [flags] <command> [args...]")
	}

	label := flags.label
	if !cmd.Flags().Changed("label") {
		label = DeriveLabel(args, cfg.LabelMax)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, RunOptions{
		Command:         exec.Command{Name: args[0], Args: args[1:], Stdin: os.Stdin},
		Label:           label,
		Config:          cfg,
		Stdout:          a.stdout,
		Stderr:          a.stderr,
		Logger:          a.log,
		TerminalOptions: a.termOpts,
	})
}

// execute runs the root command with args and returns the process exit code.
// A failed child has already been reported, so only liveline's own errors
// are printed here.
func (a *app) execute(ctx context.Context, args []string) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if _, ok := errors.GetExitCode(err); !ok {
		fmt.Fprint(a.stderr, asStructured(err).Error())
	}
	return errors.ExitCodeFor(err)
}

// asStructured turns cobra's flag errors into usage errors.
func asStructured(err error) error {
	var llErr *errors.Error
	if stderrors.As(err, &llErr) {
		return err
	}
	return errors.New(errors.ErrUsage, err.Error(), "Run 'liveline --help' for usage.")
}

// Execute runs liveline with the process arguments and exits with the
// child's exit code.
func Execute() {
	logger.SetDefault(logger.NewEnvLogger("[liveline]"))
	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    logger.Default(),
	}
	os.Exit(a.execute(context.Background(), os.Args[1:]))
}
