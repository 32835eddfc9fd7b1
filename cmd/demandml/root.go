package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corpoml/demandml/config"
	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/pkg/log"
	"github.com/corpoml/demandml/report"
)

// app carries what every subcommand needs once the root command has loaded
// the configuration.
type app struct {
	cfg     *config.Config
	console *report.Console
	logger  log.Logger
}

// NewRootCmd creates the root command for demandml.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "demandml",
		Short: "Forecast next-month product demand",
		Long: `demandml trains a regression model on monthly product sales and forecasts
the units each product will sell next month.

Configuration is read from the file given with --config, then from DEMANDML_*
environment variables (DEMANDML_DATA_FOLDS -> data.folds), then from flags.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().Bool("debug", false, "Enable the data peek utilities")
	cmd.PersistentFlags().String("color", "", "Report colours: auto, always, never")

	cmd.AddCommand(newTrainCmd(a))
	cmd.AddCommand(newPredictCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newHistoryCmd(a))

	return cmd
}

// setup loads the configuration, applies the persistent flag overrides and
// sets up logging and the report console.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("debug") {
		cfg.Report.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("color") {
		c, _ := flags.GetString("color")
		cfg.Report.Color = strings.ToLower(c)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Setup(cmd.ErrOrStderr(), cfg.LogLevel())
	a.cfg = cfg
	a.logger = log.GetLoggerWithName("cli")

	opts := []report.Option{
		report.WithDebug(cfg.Report.Debug),
		report.WithInput(cmd.InOrStdin()),
	}
	switch cfg.Report.Color {
	case config.ColorAlways:
		opts = append(opts, report.WithColor(true))
	case config.ColorNever:
		opts = append(opts, report.WithColor(false))
	}
	a.console = report.NewConsole(cmd.OutOrStdout(), opts...)
	return nil
}

// reportedError marks an error that has already been shown on the console.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// run wraps a command body so that its failures reach the console as report
// blocks: validation problems as a WARNING, anything else, including a panic
// raised while formatting a report, as an EXCEPTION.
func (a *app) run(name string, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := errors.SafeExecute(name, func() error {
			return fn(cmd, args)
		})
		if err == nil {
			return nil
		}

		var pe *errors.PanicError
		var ve *errors.ValidationError
		switch {
		case errors.As(err, &pe):
			a.logger.Error("command panicked", err, log.OperationKey, name)
			a.console.Exception(strings.Split(fmt.Sprint(pe.PanicValue), "\n")...)
		case errors.As(err, &ve):
			a.logger.Debug("command rejected", err, log.OperationKey, name)
			a.console.Warning(err.Error())
		default:
			a.logger.Debug("command failed", err, log.OperationKey, name)
			a.console.Exception(strings.Split(err.Error(), "\n")...)
		}
		return reportedError{err}
	}
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
