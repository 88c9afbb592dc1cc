package handler

import (
	"context"
	"net/http"

	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	transportMiddleware "github.com/dkuznetsov/issueboard/internal/transport/middleware"
	"github.com/dkuznetsov/issueboard/internal/usecase/service"
	"go.uber.org/zap"
)

type SummaryService interface {
	Summarize(ctx context.Context, userId string) (*response.SummaryResponse, error)
}

type SummaryHandler struct {
	svc SummaryService
	log *zap.Logger
	env string
}

func NewSummaryHandler(svc SummaryService, log *zap.Logger, env string) *SummaryHandler {
	return &SummaryHandler{
		svc: svc,
		log: log,
		env: env,
	}
}

func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	h.log.Info("summary request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Summarize(r.Context(), userId)
	if err != nil {
		h.log.Error("failed to generate summary",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
