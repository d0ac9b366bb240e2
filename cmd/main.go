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

	"golang.org/x/crypto/bcrypt"

	httpctx "github.com/dtroode/authd/internal/api/http/context"
	"github.com/dtroode/authd/internal/api/http/handler"
	"github.com/dtroode/authd/internal/api/http/middleware"
	"github.com/dtroode/authd/internal/api/http/router"
	httpServer "github.com/dtroode/authd/internal/api/http/server"
	"github.com/dtroode/authd/internal/config"
	"github.com/dtroode/authd/internal/hash"
	"github.com/dtroode/authd/internal/logger"
	"github.com/dtroode/authd/internal/model"
	"github.com/dtroode/authd/internal/repository/postgres"
	redisrepo "github.com/dtroode/authd/internal/repository/redis"
	"github.com/dtroode/authd/internal/server"
	"github.com/dtroode/authd/internal/service"
	"github.com/dtroode/authd/internal/token"
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
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	cache, err := redisrepo.NewConnection(ctx, cfg.Redis.Addr())
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer cache.Close()

	userRepo := postgres.NewUserRepository(db)
	tokenRepo := redisrepo.NewTokenRepository(cache)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}

	hasher := hash.NewBcrypt(bcrypt.DefaultCost)
	tokenService := service.NewToken(tokenManager, tokenRepo, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL(), logger)
	authService := service.NewAuth(userRepo, hasher, tokenService, logger)

	ctxMgr := httpctx.NewManager()
	authHandler := handler.NewAuth(authService, ctxMgr, handler.CookieConfig{
		AccessTTL:  cfg.JWT.AccessTTL(),
		RefreshTTL: cfg.JWT.RefreshTTL(),
		Secure:     cfg.HTTP.SecureCookies,
	}, logger)
	authenticate := middleware.NewAuthenticate(authService, ctxMgr, logger)
	logging := middleware.NewLogging(logger)

	srv := httpServer.NewHTTPServer(
		router.New(authHandler, authenticate, logging),
		fmt.Sprintf(":%s", cfg.HTTP.Port),
	)

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
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
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

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
