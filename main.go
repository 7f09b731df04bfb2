package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"raintarget/internal/config"
	"raintarget/internal/logging"
)

const appVersion = "0.2.0"

// app carries state shared by the root command and its subcommands.
type app struct {
	// flags holds flag values before the config file and environment apply.
	flags   config.Config
	cfgPath string
	changed map[string]bool

	cfg    config.Config
	logger zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fail(err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{flags: config.Default()}
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "raintarget",
		Short: "HCL rain-reduction target calculator (CLI, web, batch or Telegram)",
		Example: `  raintarget --score 180 --overs-lost 5
  raintarget --score 150 --overs-lost 3 --scheduled-overs 40 --explain
  raintarget serve --port 8484
  raintarget batch -f scenarios.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCalc(cmd, opts)
		},
	}

	cmd.Version = appVersion
	cmd.SetVersionTemplate("raintarget v{{.Version}}\n")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.Flags().IntVar(&opts.score, "score", 0, "First innings score (runs)")
	cmd.Flags().IntVar(&opts.oversLost, "overs-lost", 0, "Overs lost from the second innings")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Show how the target was worked out")

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", config.DefaultPath(), "Path to TOML config file")
	pf.IntVar(&a.flags.ScheduledOvers, "scheduled-overs", a.flags.ScheduledOvers, "Overs allocated to each side")
	pf.StringVar(&a.flags.LogLevel, "log-level", a.flags.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&a.flags.LogFormat, "log-format", a.flags.LogFormat, "Log format (console or json)")

	cmd.AddCommand(newServeCmd(a), newBatchCmd(a), newBotCmd(a))
	return cmd
}

// setup resolves the effective configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.changed = changedFlags(cmd.Flags())
	if a.changed["config"] && !config.FileExists(a.cfgPath) {
		return fmt.Errorf("config file %s not found", a.cfgPath)
	}

	base, changed := a.flags, a.changed
	if cmd == cmd.Root() && changed["scheduled-overs"] {
		// Out of range overs on a one-off calculation are a rejection, not a
		// config error; runCalc reads the flag itself.
		base.ScheduledOvers = config.Default().ScheduledOvers
		changed = maps.Clone(changed)
		delete(changed, "scheduled-overs")
	}

	cfg, err := config.Resolve(base, a.cfgPath, changed)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Out:     cmd.ErrOrStderr(),
		Version: appVersion,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func changedFlags(fs *pflag.FlagSet) map[string]bool {
	changed := make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) {
		changed[f.Name] = true
	})
	return changed
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	type exitCoder interface {
		ExitCode() int
	}
	if coded, ok := err.(exitCoder); ok {
		os.Exit(coded.ExitCode())
	}
	os.Exit(1)
}
