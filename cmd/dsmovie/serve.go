package main

import (
	"context"
	"dsmovie/auth"
	"dsmovie/httpserver"
	"dsmovie/movie"
	"dsmovie/pkg/sentry"
	"dsmovie/postgres"
	"dsmovie/score"
	"dsmovie/user"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx, shutdownTimeout)
		},
	}
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Grace period for in-flight requests")

	return cmd
}

func runServe(parent context.Context, cc *commandContext, shutdownTimeout time.Duration) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := cc.config
	logger := cc.log()
	defer func() { _ = logger.Sync() }()

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	if err := sentry.Init(cfg.SentryDSN, cfg.AppEnv); err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := cc.openDB()
	if err != nil {
		return fmt.Errorf("open postgres connection: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get db instance: %w", err)
	}
	defer sqlDB.Close()

	tx := postgres.NewTransactor(db)
	movies := postgres.NewMovieRepository(db)
	users := user.NewUsecase(postgres.NewUserRepository(db), auth.ContextSecurity{})

	server := httpserver.Default(cfg,
		httpserver.WithLogger(logger),
		httpserver.WithDatabase(sqlDB),
		httpserver.WithUserService(users),
		httpserver.WithMovieService(movie.NewUsecase(movies, tx)),
		httpserver.WithScoreService(score.NewUsecase(users, movies, postgres.NewScoreRepository(db), tx)),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		logger.Infow("server started", "addr", server.Addr)
		serverErrCh <- server.Start()
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sentry.Fatal(err)
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infow("shutting down", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
