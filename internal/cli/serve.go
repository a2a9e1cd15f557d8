package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital_queue/internal/auth"
	"hospital_queue/internal/catalog"
	"hospital_queue/internal/handlers"
	"hospital_queue/internal/middleware"
	"hospital_queue/internal/queue"
	"hospital_queue/internal/server"
	"hospital_queue/internal/storage"
	"hospital_queue/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	cache, err := storage.InitRedis(ctx, cfg.Redis)
	if err != nil {
		// без Redis справочник читается напрямую из БД
		logger.Warn().Err(err).Msg("Redis недоступен, кэш отделений отключён")
	}
	if cache != nil {
		defer cache.Close()
	}

	departments := catalog.New(db, cache, cfg.DepartmentCacheTTL, logger)
	if err := departments.Seed(ctx); err != nil {
		return err
	}

	engine := queue.NewEngine(db, departments,
		queue.WithSingleActiveEntry(cfg.SingleActiveEntry),
		queue.WithLogger(logger),
	)
	users := auth.NewUserStore(db)
	tokens := auth.NewTokenIssuer(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	scheduler, err := tasks.NewPlanner(engine, cfg.AutoCompleteAfter, logger).InitScheduler()
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.Deps{
		Handler:     handlers.New(engine, departments, users, tokens, logger),
		Tokens:      tokens,
		Users:       users,
		AuthLimiter: middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP сервер запущен")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("остановка сервера")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
