package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpctx "github.com/dtroode/gophauth/internal/api/http/context"
	"github.com/dtroode/gophauth/internal/api/http/handler"
	"github.com/dtroode/gophauth/internal/api/http/router"
	httpServer "github.com/dtroode/gophauth/internal/api/http/server"
	"github.com/dtroode/gophauth/internal/config"
	"github.com/dtroode/gophauth/internal/credential"
	"github.com/dtroode/gophauth/internal/logger"
	"github.com/dtroode/gophauth/internal/metrics"
	"github.com/dtroode/gophauth/internal/model"
	"github.com/dtroode/gophauth/internal/repository/memory"
	"github.com/dtroode/gophauth/internal/repository/postgres"
	"github.com/dtroode/gophauth/internal/seed"
	"github.com/dtroode/gophauth/internal/server"
	"github.com/dtroode/gophauth/internal/service"
	"github.com/dtroode/gophauth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	warnInsecureDefaults(cfg, logger)

	userStore, revoker, closeStore := openStores(ctx, cfg, logger)
	defer closeStore()

	hasher := credential.NewBcrypt(cfg.BcryptCost)

	if cfg.SeedUsersFile != "" {
		n, err := seed.NewSeeder(userStore, hasher, logger).SeedFromFile(ctx, cfg.SeedUsersFile)
		if err != nil {
			logger.Fatal("failed to seed users", "error", err, "file", cfg.SeedUsersFile)
		}
		logger.Info("seeded users", "created", n, "file", cfg.SeedUsersFile)
	}

	ctxMgr := httpctx.NewManager()
	sessionService := service.NewSessionService(
		token.NewJWT(cfg.Session.Secret),
		userStore,
		revoker,
		ctxMgr,
		cfg.Session.TTL,
		cfg.Session.RememberTTL,
		logger,
	)
	authService := service.NewAuth(userStore, hasher, sessionService, logger)
	authService.Warm()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterMetrics(registry)

	r := router.New(authService, sessionService, ctxMgr, router.Options{
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.IsProduction() || cfg.HTTP.EnableHTTPS,
		},
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		AllowedOrigins: cfg.CORSOrigins,
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, logger)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), httpServer.Timeouts{
		Read:  cfg.HTTP.ReadTimeout,
		Write: cfg.HTTP.WriteTimeout,
		Idle:  cfg.HTTP.IdleTimeout,
	})

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.UserStore, model.SessionRevoker, func()) {
	if cfg.Database.DSN == "" {
		logger.Warn("DATABASE_DSN is empty, accounts are kept in memory and lost on restart")
		return memory.NewUserRepository(), memory.NewSessionDenylist(), func() {}
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	return postgres.NewUserRepository(db), postgres.NewSessionRevocationRepository(db), func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}
}

func warnInsecureDefaults(cfg *config.Config, logger *logger.Logger) {
	if !cfg.IsProduction() {
		return
	}
	if cfg.UsesDefaultSecret() {
		logger.Warn("SESSION_SECRET uses the development default, set a strong secret in production")
	}
	if cfg.AllowsAnyOrigin() {
		logger.Warn("CORS_ORIGINS allows any origin, session cookies will not be sent cross-origin")
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
