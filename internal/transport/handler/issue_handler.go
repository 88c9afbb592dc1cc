package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkuznetsov/issueboard/internal/transport/dto/request"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	transportMiddleware "github.com/dkuznetsov/issueboard/internal/transport/middleware"
	"github.com/dkuznetsov/issueboard/internal/usecase/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type IssueService interface {
	Create(ctx context.Context, userId string, req *request.CreateIssueRequest) (*response.IssueResponse, error)
	List(ctx context.Context, userId string) (*response.IssueListResponse, error)
	Update(ctx context.Context, userId, issueId string, req *request.UpdateIssueRequest) (*response.IssueResponse, error)
	Delete(ctx context.Context, userId, issueId string) (*response.DeleteIssueResponse, error)
	Board(ctx context.Context, userId string) (*response.BoardResponse, error)
	Move(ctx context.Context, userId string, req *request.MoveIssueRequest) (*response.MoveIssueResponse, error)
}

type IssueHandler struct {
	svc IssueService
	log *zap.Logger
	env string
}

func NewIssueHandler(svc IssueService, log *zap.Logger, env string) *IssueHandler {
	return &IssueHandler{
		svc: svc,
		log: log,
		env: env,
	}
}

func (h *IssueHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.log.Info("create issue request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Парсим json в модель CreateIssueRequest
	var req request.CreateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err), h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Create(r.Context(), userId, &req)
	if err != nil {
		h.log.Error("failed to create issue",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusCreated, resp)
}

func (h *IssueHandler) List(w http.ResponseWriter, r *http.Request) {
	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.List(r.Context(), userId)
	if err != nil {
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *IssueHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.log.Info("update issue request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	issueId := chi.URLParam(r, "id")
	if issueId == "" {
		statusCode, errResp := HandleError(service.ErrInvalidInput, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Парсим json в модель UpdateIssueRequest
	var req request.UpdateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err), h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Update(r.Context(), userId, issueId, &req)
	if err != nil {
		h.log.Error("failed to update issue",
			zap.String("issue_id", issueId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *IssueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.log.Info("delete issue request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	issueId := chi.URLParam(r, "id")
	if issueId == "" {
		statusCode, errResp := HandleError(service.ErrInvalidInput, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Delete(r.Context(), userId, issueId)
	if err != nil {
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *IssueHandler) Board(w http.ResponseWriter, r *http.Request) {
	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Board(r.Context(), userId)
	if err != nil {
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *IssueHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.log.Info("move issue request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Парсим json в модель MoveIssueRequest
	var req request.MoveIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err), h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Move(r.Context(), userId, &req)
	if err != nil {
		h.log.Error("failed to move issue",
			zap.String("issue_id", req.IssueId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
