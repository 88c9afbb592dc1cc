package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkuznetsov/issueboard/internal/transport/dto/request"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	"github.com/dkuznetsov/issueboard/internal/usecase/service"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	OAuthURL() (*response.OAuthURLResponse, error)
	OAuthCallback(ctx context.Context, req *request.OAuthCallbackRequest) (*response.LoginResponse, error)
}

type AuthHandler struct {
	svc AuthService
	log *zap.Logger
	env string
}

func NewAuthHandler(svc AuthService, log *zap.Logger, env string) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		log: log,
		env: env,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.log.Info("register request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	// Парсим json в модель RegisterRequest
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err), h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Register(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to register user",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	h.log.Info("user registered",
		zap.String("user_id", resp.User.Id),
	)

	WriteJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.log.Info("login request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	// Парсим json в модель LoginRequest
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err), h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Login(r.Context(), &req)
	if err != nil {
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) OAuthURL(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.OAuthURL()
	if err != nil {
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	h.log.Info("oauth callback received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	// Парсим json в модель OAuthCallbackRequest
	var req request.OAuthCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode request body", zap.Error(err))
		statusCode, errResp := HandleError(service.WrapError(service.ErrInvalidInput, err), h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.OAuthCallback(r.Context(), &req)
	if err != nil {
		h.log.Error("oauth callback failed", zap.Error(err))
		statusCode, errResp := HandleError(err, h.env)
		WriteError(w, statusCode, errResp)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
