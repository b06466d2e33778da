// Command qbank parses Moodle XML question banks and renders them through
// versioned templates.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/assessment-docgen/internal/config"
	"github.com/SAP-F-2025/assessment-docgen/internal/events"
	"github.com/SAP-F-2025/assessment-docgen/internal/services"
	"github.com/SAP-F-2025/assessment-docgen/internal/utils"
	"github.com/SAP-F-2025/assessment-docgen/internal/validator"
)

// app holds state shared by all subcommands after the root pre-run.
type app struct {
	envFile  string
	logLevel string

	cfg       *config.Config
	logger    *slog.Logger
	ops       utils.Logger
	started   time.Time
	validator *validator.Validator
	publisher events.EventPublisher
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qbank",
		Short: "Moodle question bank parser and template renderer",
		Long: `qbank reads Moodle XML question banks, groups questions into courses
by category and renders them through v2 block templates.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			a.ops.LogOperation(cmd.CommandPath(), time.Since(a.started), nil)
			return a.closePublisher()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Env file to load (default: .env if present)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newMigrateCmd(a))
	rootCmd.AddCommand(newPresetsCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var envFiles []string
	if a.envFile != "" {
		envFiles = append(envFiles, a.envFile)
	}
	cfg, err := config.LoadConfig(envFiles...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.started = time.Now()
	a.logger = utils.NewSlog(cmd.ErrOrStderr(), cfg.IsProduction(), cfg.LogLevel)
	a.ops = utils.NewSlogLogger(a.logger).With("command", cmd.CommandPath())
	a.validator = validator.New()

	if a.publisher == nil {
		publisher, err := cfg.Events.CreateEventPublisher(a.logger)
		if err != nil {
			return fmt.Errorf("failed to create event publisher: %w", err)
		}
		a.publisher = publisher
	}
	return nil
}

// closePublisher closes the event publisher at most once.
func (a *app) closePublisher() error {
	if a.publisher == nil {
		return nil
	}
	err := a.publisher.Close()
	a.publisher = nil
	return err
}

func (a *app) bankService() services.BankService {
	return services.NewBankService(services.BankServiceConfig{
		Parser:         a.cfg.ParserOptions(),
		MaxUploadBytes: a.cfg.MaxUploadBytes,
	}, a.validator, a.publisher, a.logger)
}

func (a *app) renderService() services.RenderService {
	return services.NewRenderService(a.cfg.RenderOptions(), a.publisher, a.logger)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return runApp(ctx, &app{}, args, stdout, stderr)
}

// runApp executes the command tree. Cobra skips the post-run hook when a
// command fails, so the publisher is closed here on that path.
func runApp(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if a.ops != nil {
		a.ops.LogOperation("qbank", time.Since(a.started), err)
	}
	if cerr := a.closePublisher(); cerr != nil && a.ops != nil {
		a.ops.LogError(cerr, "Failed to close event publisher")
	}
	return err
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
