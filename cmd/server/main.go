package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"vetgate/internal/content"
	"vetgate/internal/events"
	"vetgate/internal/i18n"
	"vetgate/internal/notify"
	"vetgate/internal/platform/config"
	"vetgate/internal/platform/httpserver"
	"vetgate/internal/platform/logger"
	"vetgate/internal/platform/metrics"
	platformredis "vetgate/internal/platform/redis"
	"vetgate/internal/remote"
	"vetgate/internal/session"
	httptransport "vetgate/internal/transport/http"
	"vetgate/internal/wizard"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	api := remote.New(cfg.PlatformBaseURL, cfg.PlatformAnonKey,
		remote.WithTimeout(cfg.RequestTimeout),
		remote.WithMetrics(m),
		remote.WithLogger(log),
	)
	defer func() { _ = api.Close() }()

	bus := events.NewBus(log)
	notifier := notify.New()

	var sessionStore session.Store = session.NewInMemoryStore()
	var health func(ctx context.Context) error
	if redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient.Client)
		health = redisClient.Health
		defer func() { _ = redisClient.Close() }()
	}

	sessions := session.New(api, sessionStore,
		session.WithBus(bus),
		session.WithNotifier(notifier),
		session.WithLogger(log),
	)
	api.SetTokenSource(sessions.Token)
	api.SetUnauthorizedHandler(sessions.Invalidate)

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	sessions.Bootstrap(bootstrapCtx)
	cancelBootstrap()

	wz := wizard.New(
		wizard.Options{
			ExtendedProfile:  cfg.ExtendedProfile,
			RequireDocuments: cfg.RequireDocuments,
		},
		wizard.Deps{
			Registrar:     api,
			Authenticator: session.NewAuthenticator(sessions),
			Bus:           bus,
			Notifier:      notifier,
			Metrics:       m,
			Logger:        log,
		},
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Wizard:     wz,
		Sessions:   sessions,
		Content:    content.New(api, content.WithLogger(log)),
		Notifier:   notifier,
		Translator: i18n.NewTranslator(cfg.DefaultLocale),
		EmailCheck: api,
		Registry:   registry,
		Health:     health,
		Logger:     log,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting vetgate", "addr", cfg.Addr,
		"extended_profile", cfg.ExtendedProfile,
		"require_documents", cfg.RequireDocuments,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("stopped")
}
