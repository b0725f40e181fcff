package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/5dpapa/portfolio/api/handler"
	"github.com/5dpapa/portfolio/domain"
	"github.com/5dpapa/portfolio/internal/config"
	"github.com/5dpapa/portfolio/internal/identity"
	redisInfra "github.com/5dpapa/portfolio/internal/infrastructure/redis"
	"github.com/5dpapa/portfolio/internal/middleware"
	"github.com/5dpapa/portfolio/internal/oauth"
	"github.com/5dpapa/portfolio/internal/router"
	"github.com/5dpapa/portfolio/internal/services"
	"github.com/5dpapa/portfolio/internal/services/lifecycle"
	"github.com/5dpapa/portfolio/pkg/httpcontext"
	"github.com/5dpapa/portfolio/pkg/logger"
	"github.com/5dpapa/portfolio/repository"
	boltRepo "github.com/5dpapa/portfolio/repository/bolt"
	redisRepo "github.com/5dpapa/portfolio/repository/redis"
	authUC "github.com/5dpapa/portfolio/usecase/auth"
	sessionUC "github.com/5dpapa/portfolio/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	sessionRepo, err := openStorage(cfg, manager)
	if err != nil {
		zapLogger.Fatal("storage failed", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}

	store := sessionUC.New(sessionRepo, zapLogger)

	// Navbar analog: any consumer interested in auth state subscribes here.
	store.Subscribe(func(sess *domain.Session) {
		if sess != nil {
			zapLogger.Info("signed in", zap.String("user", sess.User.DisplayName()))
			return
		}
		zapLogger.Info("signed out")
	})

	store.Rehydrate(appCtx)

	registry := oauth.NewRegistry(
		oauth.NewGoogle(
			cfg.OAuth.Google.ClientID,
			cfg.OAuth.Google.ClientSecret,
			cfg.RedirectURL("google"),
		),
		oauth.NewFacebook(
			cfg.OAuth.Facebook.ClientID,
			cfg.OAuth.Facebook.ClientSecret,
			cfg.RedirectURL("facebook"),
		),
	)

	identityClient := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.Timeout, zapLogger)
	authClient := authUC.New(identityClient, registry, store, zapLogger)

	go drainResults(appCtx, authClient, zapLogger)

	watcher := services.NewExpiryWatcher(store, cfg.Session.ExpiryCheckInterval, zapLogger)
	watcher.Start()
	manager.Register("expiry_watcher", func(ctx context.Context) error {
		watcher.Stop()
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authClient, ctxAdapter, zapLogger),
		Session: apiHandler.NewSessionHandler(store, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(store, cfg.Storage.Backend, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, middleware.RequestLog(zapLogger))

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.Callback.ReadTimeout,
		WriteTimeout: cfg.Callback.WriteTimeout,
		IdleTimeout:  cfg.Callback.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("callback listener started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("callback listener crashed", zap.Error(err))
		}
	}()

	manager.Register("callback_listener", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

func openStorage(cfg *config.Config, manager *lifecycle.Manager) (repository.SessionRepository, error) {
	switch cfg.Storage.Backend {
	case "redis":
		client, err := redisInfra.NewClient(cfg.Storage.Redis)
		if err != nil {
			return nil, err
		}
		manager.Register("redis", func(ctx context.Context) error {
			return client.Close()
		})
		return redisRepo.NewSessionRepository(client, "", cfg.Storage.RecordTTL), nil
	default:
		repo, closeFn, err := boltRepo.Open(cfg.Storage.BoltPath, cfg.Storage.BoltBucket)
		if err != nil {
			return nil, err
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return closeFn()
		})
		return repo, nil
	}
}

func drainResults(ctx context.Context, client *authUC.Client, zapLogger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case result := <-client.Results():
			if result.Err != nil {
				zapLogger.Warn("oauth login failed",
					zap.String("provider", result.Provider),
					zap.Error(result.Err),
				)
				continue
			}
			zapLogger.Info("oauth login completed",
				zap.String("provider", result.Provider),
				zap.String("user", result.Session.User.DisplayName()),
			)
		}
	}
}
