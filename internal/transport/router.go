package transport

import (
	"time"

	"github.com/dkuznetsov/issueboard/internal/transport/handler"
	transportMiddleware "github.com/dkuznetsov/issueboard/internal/transport/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	issueHandler *handler.IssueHandler,
	summaryHandler *handler.SummaryHandler,
	healthHandler *handler.HealthHandler,
	tokens transportMiddleware.TokenParser,
	log *zap.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	// Recovery должен быть первым для обработки паник во всех middleware
	router.Use(transportMiddleware.Recovery(log))

	// RequestID для трейсинга запросов
	router.Use(middleware.RequestID)

	// Logging для структурированного логирования всех запросов
	router.Use(transportMiddleware.Logging(log))

	// Timeout для контроля времени выполнения запросов; вызов внешней
	// модели для AI-сводки самый долгий, отсюда запас
	router.Use(transportMiddleware.Timeout(30*time.Second, log))

	// Metrics для сбора метрик производительности
	router.Use(transportMiddleware.Metrics)

	// Эндпоинт для Prometheus метрик
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		// Публичные маршруты
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/auth/oauth/url", authHandler.OAuthURL)
		r.Post("/auth/oauth/callback", authHandler.OAuthCallback)

		// Маршруты, требующие сессию
		r.Group(func(r chi.Router) {
			r.Use(transportMiddleware.Auth(tokens, log))

			r.Put("/profile", profileHandler.UpdateProfile)
			r.Get("/profile/check-password", profileHandler.CheckPassword)
			r.Put("/profile/password", profileHandler.ChangePassword)

			r.Get("/issues", issueHandler.List)
			r.Post("/issues", issueHandler.Create)
			r.Put("/issues/{id}", issueHandler.Update)
			r.Delete("/issues/{id}", issueHandler.Delete)

			r.Get("/board", issueHandler.Board)
			r.Post("/board/move", issueHandler.Move)

			r.Post("/ai/summary", summaryHandler.Summarize)
		})
	})

	router.Get("/health", healthHandler.HealthCheck)
	return router
}
