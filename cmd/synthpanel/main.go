package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container
	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/synthpanel/internal/adapter/driven/memory"
	redisadapter "github.com/ericfisherdev/synthpanel/internal/adapter/driven/redis"
	sqliteadapter "github.com/ericfisherdev/synthpanel/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/synthpanel/internal/adapter/driven/synthgen"
	httphandler "github.com/ericfisherdev/synthpanel/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/synthpanel/internal/adapter/driving/web"
	"github.com/ericfisherdev/synthpanel/internal/application"
	"github.com/ericfisherdev/synthpanel/internal/config"
	"github.com/ericfisherdev/synthpanel/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (.env first, real environment wins).
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"api_url", cfg.APIURL,
		"token_store", cfg.TokenStore,
		"token_ttl", cfg.TokenTTL,
		"cookie_secure", cfg.CookieSecure,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the token store.
	tokens, closeTokens, err := openTokenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeTokens(); closeErr != nil {
			logger.Error("error closing token store", "error", closeErr)
		}
	}()

	// 4. Wire adapters and services.
	authClient, err := synthgen.NewClient(cfg.APIURL)
	if err != nil {
		return err
	}

	routes, err := application.NewRouteTable(application.DefaultRoutes())
	if err != nil {
		return err
	}
	guard := application.NewRouteGuard(routes, tokens, logger)
	sessions := application.NewSessionService(authClient, tokens, logger)

	// 5. Register API and GUI routes on a shared mux.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(routes, guard, cfg.TrustClientHeader, logger))

	webHandler := webhandler.NewHandler(routes, guard, sessions, cfg.CookieSecure, logger)
	if err := webhandler.RegisterRoutes(mux, webHandler); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.ApplyMiddleware(mux, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 6. Serve until the signal context is cancelled, then drain.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	logger.Info("synthpanel started", "listen_addr", cfg.ListenAddr)

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

// openTokenStore builds the configured token store and returns a function
// that releases it.
func openTokenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.TokenStore, func() error, error) {
	noop := func() error { return nil }

	if cfg.TokenTTL > 0 && cfg.TokenStore != config.TokenStoreRedis {
		logger.Warn("SYNTHPANEL_TOKEN_TTL only applies to the redis token store, ignoring",
			"token_store", cfg.TokenStore,
			"token_ttl", cfg.TokenTTL,
		)
	}

	switch cfg.TokenStore {
	case config.TokenStoreRedis:
		client, err := redisadapter.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("redis connected", "addr", cfg.RedisAddr)
		return redisadapter.NewTokenStore(client, cfg.TokenTTL), client.Close, nil

	case config.TokenStoreMemory:
		logger.Warn("using in-memory token store, tokens are lost on restart")
		return memory.NewTokenStore(), noop, nil
	}

	if !cfg.HasSecretKey() {
		logger.Warn("SYNTHPANEL_SECRET_KEY not set, falling back to in-memory token store")
		return memory.NewTokenStore(), noop, nil
	}

	// Dual reader/writer connections with WAL mode; migrations on the writer.
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("database opened", "path", db.Path(), "schema_version", version)

	return sqliteadapter.NewTokenRepo(db, cfg.SecretKey), db.Close, nil
}
