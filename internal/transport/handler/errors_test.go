package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dkuznetsov/issueboard/internal/usecase/service"
	"github.com/stretchr/testify/assert"
)

func TestHandleError_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", service.WrapError(service.ErrInvalidInput, nil), http.StatusBadRequest, "INVALID_INPUT"},
		{"unauthorized", service.WrapError(service.ErrInvalidCredentials, nil), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", service.WrapError(service.ErrNoPasswordSet, nil), http.StatusForbidden, "FORBIDDEN"},
		{"not found", service.WrapError(service.ErrIssueNotFound, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", service.WrapError(service.ErrEmailExists, nil), http.StatusConflict, "CONFLICT"},
		{"upstream", service.WrapError(service.ErrSummaryFailed, nil), http.StatusInternalServerError, "UPSTREAM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := HandleError(tt.err, "prod")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleError_UnknownError(t *testing.T) {
	status, resp := HandleError(errors.New("boom"), "prod")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	// В проде исходная ошибка не раскрывается
	assert.Empty(t, resp.Error.Detail)
}

func TestHandleError_DetailOutsideProd(t *testing.T) {
	err := service.WrapError(service.ErrInvalidInput, errors.New("field email is malformed"))

	_, prodResp := HandleError(err, "prod")
	assert.Empty(t, prodResp.Error.Detail)

	_, devResp := HandleError(err, "local")
	assert.Equal(t, "field email is malformed", devResp.Error.Detail)
}

func TestHandleError_WrappedDomainError(t *testing.T) {
	// DomainError находится и сквозь цепочку оберток
	err := errors.Join(errors.New("outer"), service.WrapError(service.ErrIssueNotFound, nil))

	status, resp := HandleError(err, "prod")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
