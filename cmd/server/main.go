package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkuznetsov/issueboard/internal/auth"
	"github.com/dkuznetsov/issueboard/internal/config"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/db"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/repository"
	"github.com/dkuznetsov/issueboard/internal/summary"
	"github.com/dkuznetsov/issueboard/internal/transport"
	"github.com/dkuznetsov/issueboard/internal/transport/handler"
	"github.com/dkuznetsov/issueboard/internal/usecase/service"
	"github.com/dkuznetsov/issueboard/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewDatabase(ctx, cfg.Database.URL, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer pool.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool, log)
	workspaceRepo := repository.NewWorkspaceRepository(pool, log)
	issueRepo := repository.NewIssueRepository(pool, log)

	// Аутентификация и внешние клиенты: явное конструирование,
	// без глобальных синглтонов
	tokens := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	oauthProvider := auth.NewGoogleProvider(cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, cfg.OAuth.RedirectURL)
	summaryClient := summary.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)

	// Сервисы
	authSvc := service.NewAuthService(userRepo, workspaceRepo, tokens, oauthProvider, log)
	profileSvc := service.NewProfileService(userRepo, log)
	issueSvc := service.NewIssueService(issueRepo, workspaceRepo, log)
	summarySvc := service.NewSummaryService(issueRepo, summaryClient, log)

	// Хэндлеры
	env := cfg.App.Env
	authHandler := handler.NewAuthHandler(authSvc, log, env)
	profileHandler := handler.NewProfileHandler(profileSvc, log, env)
	issueHandler := handler.NewIssueHandler(issueSvc, log, env)
	summaryHandler := handler.NewSummaryHandler(summarySvc, log, env)
	healthHandler := handler.NewHealthHandler(log)

	router := transport.NewRouter(
		authHandler,
		profileHandler,
		issueHandler,
		summaryHandler,
		healthHandler,
		tokens,
		log,
	)

	server := transport.NewServer(cfg.App.Port, router, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
