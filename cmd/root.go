package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unifiwatch/stockwatch/internal/app"
	"github.com/unifiwatch/stockwatch/internal/checker"
	"github.com/unifiwatch/stockwatch/internal/events"
	"github.com/unifiwatch/stockwatch/internal/history"
	"github.com/unifiwatch/stockwatch/internal/logging"
	"github.com/unifiwatch/stockwatch/internal/storage"
	"github.com/unifiwatch/stockwatch/pkg/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands will use.
// This allows us to inject a mock app during tests.
type App interface {
	Close()
	GetLogger() *zap.Logger
	GetScreenshotStore() storage.Provider
	GetHistory() history.Provider
	GetEvents() events.Provider
}

// newApp is the application factory. It's a variable so we can
// replace it with a mock factory in our tests.
var newApp func(ctx context.Context) (App, error) = func(ctx context.Context) (App, error) {
	return app.NewApp(ctx)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stockwatch",
		Short: "A stock availability monitor for a single product page.",
		Long: `stockwatch checks whether an e-commerce product page still shows its
sold-out marker. When it does not, the monitor raises a Pushover
notification and records a status token consumed by an external LED
controller. One invocation performs exactly one check; cadence belongs
to cron.`,

		// Runs AFTER config is loaded but BEFORE the subcommand's RunE;
		// the right place to build and inject the application.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		// Ensures services are shut down gracefully.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stockwatch/config.yaml)")

	cmd.AddCommand(newCheckCmd())

	return cmd
}

// exitCode is set by the check command from the run outcome; Execute
// returns it so main can hand it to os.Exit. The codes are stable:
// 0 success, 1 partial failure, 2 fatal failure.
var exitCode int

// Execute is the main entry point. It returns the process exit code.
func Execute() int {
	exitCode = checker.ExitOK

	// Initialize the logger once at the very start.
	logging.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Error("Command execution failed", zap.Error(err))
		return checker.ExitFatal
	}
	return exitCode
}
