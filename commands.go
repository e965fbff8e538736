package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"schoolPortal/internal/services"
	"schoolPortal/internal/storage"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portal",
		Short: "School portal: students, teachers, courses and accounts",
		Long: `School portal backend.

Configuration is read from the environment and an optional .env file.

Examples:
  portal serve
  portal seed
  portal report students --format csv`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newSeedCmd(), newReportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, store, err := openStore()
			if err != nil {
				return err
			}
			defer storage.Close(store)

			if len(config.SessionSecret) == 0 && config.Environment == "development" {
				secret, err := GenerateSecureToken(32)
				if err != nil {
					return err
				}
				config.SessionSecret = []byte(secret)
				AppLogger.Warn("SESSION_SECRET not set, using a random secret; sessions end on restart")
			}
			if err := config.ValidateServer(); err != nil {
				return err
			}
			return serve(cmd.Context(), NewApp(config, store))
		},
	}
}

func serve(ctx context.Context, app *App) error {
	if err := app.Portal.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize collections: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.LoginLimiter.StartCleanupRoutine(ctx)

	srv := &http.Server{
		Addr:              ":" + app.Config.Port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		AppLogger.WithFields(map[string]interface{}{
			"port":           app.Config.Port,
			"environment":    app.Config.Environment,
			"sheets_enabled": app.Exporter != nil,
		}).Info("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	AppLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo collections that do not exist yet",
		Long: `Seed the demo users, students, teachers and courses.

Collections that already exist are left untouched, so running seed twice
is harmless.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore()
			if err != nil {
				return err
			}
			defer storage.Close(store)

			portal := services.NewPortal(store, nil, AppLogger)
			if err := portal.Initialize(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Collections initialized")
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:       "report <students|teachers|courses>",
		Short:     "Print a report to stdout",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"students", "teachers", "courses"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore()
			if err != nil {
				return err
			}
			defer storage.Close(store)

			body, err := buildReport(services.NewPortal(store, nil, AppLogger), args[0], services.ParseReportFormat(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (csv or json)")
	return cmd
}

func buildReport(portal *services.Portal, kind string, format services.ReportFormat) ([]byte, error) {
	switch kind {
	case "students":
		return portal.Students.Report(format)
	case "teachers":
		return portal.Teachers.Report(format)
	case "courses":
		if format == services.FormatCSV {
			rows, err := portal.Courses.ReportRows()
			if err != nil {
				return nil, err
			}
			return services.EncodeCSV(rows), nil
		}
		report, err := portal.Courses.Report()
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(report, "", "  ")
	default:
		return nil, fmt.Errorf("unknown report %q", kind)
	}
}
