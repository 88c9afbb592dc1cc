package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkuznetsov/issueboard/internal/usecase/service"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// HandleError маппит доменные ошибки на HTTP коды и ErrorResponse.
// Вне прода в Detail дополнительно отдается исходная ошибка.
func HandleError(err error, env string) (int, ErrorResponse) {
	if err == nil {
		return http.StatusOK, ErrorResponse{}
	}

	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		// Маппим код ошибки на HTTP статус
		statusCode := mapErrorCodeToHTTPStatus(domainErr.Code)
		resp := ErrorResponse{
			Error: ErrorDetail{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			},
		}
		if env != "prod" && domainErr.Err != nil {
			resp.Error.Detail = domainErr.Err.Error()
		}
		return statusCode, resp
	}

	// Неизвестная ошибка - возвращаем 500
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	}
	if env != "prod" {
		resp.Error.Detail = err.Error()
	}
	return http.StatusInternalServerError, resp
}

// mapErrorCodeToHTTPStatus маппит код доменной ошибки на HTTP статус
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case "INVALID_INPUT":
		return http.StatusBadRequest // 400
	case "UNAUTHORIZED":
		return http.StatusUnauthorized // 401
	case "FORBIDDEN":
		return http.StatusForbidden // 403
	case "NOT_FOUND":
		return http.StatusNotFound // 404
	case "CONFLICT":
		return http.StatusConflict // 409
	case "UPSTREAM_ERROR":
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteError отправляет ErrorResponse клиенту
func WriteError(w http.ResponseWriter, statusCode int, errResp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errResp)
}

// WriteJSON отправляет успешный ответ клиенту
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
