// Package cmd defines and implements the CLI commands for the
// stockwatch executable.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unifiwatch/stockwatch/internal/checker"
	"github.com/unifiwatch/stockwatch/internal/clock/system"
	"github.com/unifiwatch/stockwatch/internal/id/uuid"
)

// newCheckCmd creates and configures the 'check' subcommand, which
// performs exactly one stock check run.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Runs one stock availability check",
		Long: `Performs a single check of the configured product page: jittered
fetch, sold-out classification, status token write, and notification
dispatch. The exit code reflects the worst outcome: 0 full success,
1 partial failure, 2 fatal failure.`,

		RunE: runCheckCommand,
	}
	return cmd
}

func runCheckCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	cfg, err := checker.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load checker config: %w", err)
	}

	clk := system.New()
	fetcher, err := buildFetcher(cfg, clk, logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}
	defer func() {
		if cerr := fetcher.Close(cmd.Context()); cerr != nil {
			logger.Warn("Failed to close fetcher", zap.Error(cerr))
		}
	}()

	sink, err := checker.NewFileStatusSink(cfg.StatusPath, logger)
	if err != nil {
		return fmt.Errorf("init status sink: %w", err)
	}
	notifier, err := checker.NewShoutrrrNotifier(cfg, logger)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	engine := checker.NewEngine(
		cfg,
		fetcher,
		checker.NewMarkerClassifier(cfg.SoldOutMarker, cfg.SoldOutSelectors),
		sink,
		notifier,
		checker.NewRandomJitter(cfg.JitterMin, cfg.JitterMax),
		appInstance.GetScreenshotStore(),
		appInstance.GetHistory(),
		appInstance.GetEvents(),
		clk,
		uuid.New(),
		logger,
	)

	outcome := engine.Run(cmd.Context())
	exitCode = outcome.ExitCode()
	return nil
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

func buildFetcher(cfg checker.Config, clk checker.Clock, logger *zap.Logger) (checker.Fetcher, error) {
	switch cfg.FetchMode {
	case checker.FetchModeHTTP:
		return checker.NewCollyFetcher(cfg, clk, logger)
	default:
		return checker.NewChromedpFetcher(cfg, clk, logger)
	}
}
