package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/store"
	"github.com/erazemk/najdeno/internal/web"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Database string
	Addr     string
	LogFile  string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cfg := rootOpts.Config
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the web server: the JSON API under /api and the lost and found
pages. The database is created on first start.

Examples:
  najdeno serve
  najdeno serve -d /var/lib/najdeno/najdeno.sqlite3 -a :8080 -l najdeno.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Database, "db", "d", cfg.DBPath, "SQLite database path")
	cmd.Flags().StringVarP(&opts.Addr, "addr", "a", cfg.Addr, "listen address")
	cmd.Flags().StringVarP(&opts.LogFile, "log", "l", cfg.LogFile, "log file path (default: stdout/stderr only)")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions, cmd *cobra.Command) error {
	closeLog, err := setupLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	_, statErr := os.Stat(opts.Database)
	created := errors.Is(statErr, os.ErrNotExist)

	database, err := db.Open(opts.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return err
	}
	if created {
		slog.Info("database created", "path", opts.Database)
	}
	slog.Info("database ready", "path", opts.Database)

	jwtSecret := opts.Config.JWTSecret
	if jwtSecret == "" {
		// Generated on first run and kept in the database.
		jwtSecret, err = store.GetJWTSecret(ctx, database)
		if err != nil {
			return fmt.Errorf("getting JWT secret: %w", err)
		}
	}

	handler, err := NewHandler(database, jwtSecret, opts.Config.CookieSecure)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", opts.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}

// NewHandler combines the API and the pages behind request logging. API
// routes take priority, web routes handle the rest.
func NewHandler(database *sql.DB, jwtSecret string, secureCookie bool) (http.Handler, error) {
	apiRouter := api.NewRouter(database, jwtSecret)
	webRouter, err := web.NewRouter(database, jwtSecret, secureCookie)
	if err != nil {
		return nil, fmt.Errorf("setting up web router: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/healthz", apiRouter)
	mux.Handle("/", webRouter)

	return api.LoggingMiddleware(mux), nil
}
