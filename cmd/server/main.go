package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace/docs" // swagger docs

	"workspace/internal/access"
	"workspace/internal/auth"
	"workspace/internal/cache"
	"workspace/internal/config"
	"workspace/internal/db"
	"workspace/internal/handler"
	"workspace/internal/logger"
	"workspace/internal/repository"
	"workspace/internal/router"
	"workspace/internal/service"
)

// @title Workspace API
// @version 1.0
// @description Multi-tenant workspace API: organizations, members, invitations and ordered outlines.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gormDB, err := db.Open(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		zl.Warn("reset_db set, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			zl.Fatal("reset database", zap.Error(err))
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		zl.Warn("redis unavailable, session revocation markers disabled", zap.Error(err))
	}
	cancelPing()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	credentialRepo := repository.NewCredentialRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	organizationRepo := repository.NewOrganizationRepository(gormDB)
	memberRepo := repository.NewMemberRepository(gormDB)
	invitationRepo := repository.NewInvitationRepository(gormDB)
	outlineRepo := repository.NewOutlineRepository(gormDB)

	gate := access.NewGate(memberRepo)
	signer := auth.NewCookieSigner(cfg.SessionSecret, cfg.CookieSecure)

	// Services
	authService := service.NewAuthService(userRepo, credentialRepo, sessionRepo, auth.NewRevocationList(cacheClient), cfg.SessionTTL, zl)
	organizationService := service.NewOrganizationService(gate, organizationRepo, memberRepo, userRepo, invitationRepo)
	invitationService := service.NewInvitationService(invitationRepo, memberRepo)
	outlineService := service.NewOutlineService(gate, outlineRepo)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, zl, authService, signer, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, signer, zl),
		Organization: handler.NewOrganizationHandler(organizationService, zl),
		Outline:      handler.NewOutlineHandler(outlineService, zl),
		Invitation:   handler.NewInvitationHandler(invitationService, zl),
	})

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
		docs.SwaggerInfo.Host = host
	}
	zl.Info("swagger documentation available", zap.String("path", "/swagger/index.html"))

	go func() {
		addr := ":" + cfg.ServerPort
		zl.Info("server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}
