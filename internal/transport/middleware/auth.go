package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type contextKey string

const userIdKey contextKey = "user_id"

type TokenParser interface {
	Parse(raw string) (string, error)
}

// UserID достает id аутентифицированного пользователя из контекста.
func UserID(ctx context.Context) (string, bool) {
	userId, ok := ctx.Value(userIdKey).(string)
	return userId, ok && userId != ""
}

// WithUserID кладет id пользователя в контекст так же, как это делает Auth.
func WithUserID(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, userIdKey, userId)
}

// Auth проверяет Bearer токен и кладет subject в контекст запроса.
// Менеджер токенов передается явно, глобального состояния нет.
func Auth(tokens TokenParser, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				writeUnauthorized(w)
				return
			}

			userId, err := tokens.Parse(raw)
			if err != nil {
				logger.Warn("invalid session token",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIdKey, userId)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": "Please login to use the service",
		},
	})
}
