package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/belphemur/jalaali-picker/internal/config"
	"github.com/belphemur/jalaali-picker/internal/handlers"
	"github.com/belphemur/jalaali-picker/internal/logging"
	appSignals "github.com/belphemur/jalaali-picker/internal/signals"
)

const signalListenerKey = "main-picker-events"

func newServeCommand(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the picker web server",
		Long:  "Serve the HTML picker page, the calendar API and server-side picker sessions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			logger := logging.GetLogger("main")
			logger.Info().
				Str("version", version).
				Str("commit", commit).
				Str("build_date", date).
				Msg("Starting Jalaali picker server")

			// Create context that's canceled on SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}
}

// newMux wires every handler onto a fresh mux. The returned picker handler
// owns live sessions and must be shut down with the server.
func newMux(ctx context.Context, cfg *config.Config) (*http.ServeMux, *handlers.PickerHandler, error) {
	staticHandler, err := handlers.NewStaticHandler()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize static handler: %w", err)
	}

	// Initialize base handler first, as other handlers depend on it
	baseHandler, err := handlers.NewBaseHandler(cfg, staticHandler.AssetVersion(handlers.StylesheetAsset))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize base handler: %w", err)
	}

	homeHandler := handlers.NewHomeHandler(baseHandler)
	calendarHandler := handlers.NewCalendarHandler(baseHandler)
	pickerHandler := handlers.NewPickerHandler(ctx, baseHandler)

	mux := http.NewServeMux()
	staticHandler.RegisterRoutes(mux)
	homeHandler.RegisterRoutes(mux)
	calendarHandler.RegisterRoutes(mux)
	pickerHandler.RegisterRoutes(mux)
	return mux, pickerHandler, nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := logging.GetLogger("main")

	mux, pickerHandler, err := newMux(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Handler initialization failed")
		return err
	}

	registerSignalLogging()
	defer appSignals.RemoveListeners(signalListenerKey)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Starting web server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("Context cancelled, initiating shutdown sequence")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("HTTP server error")
			pickerHandler.Shutdown()
			return fmt.Errorf("http server: %w", err)
		}
	}

	logger.Info().Dur("timeout", cfg.App.ShutdownTimeout).Msg("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shut down gracefully")
	}

	pickerHandler.Shutdown()
	logger.Info().Msg("Shutdown complete")
	return nil
}

// registerSignalLogging logs the lifecycle events of every picker.
func registerSignalLogging() {
	signalLogger := logging.GetLogger("signal-picker")

	appSignals.OnPickerOpened(func(ctx context.Context, data appSignals.PickerOpenedData) {
		signalLogger.Debug().Str("picker_id", data.PickerID).Int("year", data.Year).Int("month", data.Month).Msg("Picker opened")
	}, signalListenerKey)

	appSignals.OnPickerClosed(func(ctx context.Context, data appSignals.PickerClosedData) {
		signalLogger.Debug().Str("picker_id", data.PickerID).Str("reason", data.Reason).Msg("Picker closed")
	}, signalListenerKey)

	appSignals.OnDateCommitted(func(ctx context.Context, data appSignals.DateCommittedData) {
		signalLogger.Info().Str("picker_id", data.PickerID).Str("value", data.Value).Str("source", data.Source).Msg("Date committed")
	}, signalListenerKey)
}
