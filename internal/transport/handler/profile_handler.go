package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkuznetsov/issueboard/internal/transport/dto/request"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	transportMiddleware "github.com/dkuznetsov/issueboard/internal/transport/middleware"
	"github.com/dkuznetsov/issueboard/internal/usecase/service"
	"go.uber.org/zap"
)

type ProfileService interface {
	UpdateProfile(ctx context.Context, userId string, req *request.UpdateProfileRequest) (*response.UpdateProfileResponse, error)
	CheckPassword(ctx context.Context, userId string) (*response.CheckPasswordResponse, error)
	ChangePassword(ctx context.Context, userId string, req *request.ChangePasswordRequest) (*response.ChangePasswordResponse, error)
}

type ProfileHandler struct {
	svc ProfileService
	log *zap.Logger
	env string
}

func NewProfileHandler(svc ProfileService, log *zap.Logger, env string) *ProfileHandler {
	return &ProfileHandler{
		svc: svc,
		log: log,
		env: env,
	}
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	h.log.Info("update profile request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Парсим json в модель UpdateProfileRequest
	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err), h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.UpdateProfile(r.Context(), userId, &req)
	if err != nil {
		h.log.Error("failed to update profile",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.CheckPassword(r.Context(), userId)
	if err != nil {
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	h.log.Info("change password request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	userId, ok := transportMiddleware.UserID(r.Context())
	if !ok {
		statusCode, errResp := HandleError(service.ErrUnauthorized, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Парсим json в модель ChangePasswordRequest
	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err), h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.ChangePassword(r.Context(), userId, &req)
	if err != nil {
		h.log.Error("failed to change password",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
