package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	"github.com/dkuznetsov/issueboard/internal/usecase/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSummaryService мок сервиса для тестов
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Summarize(ctx context.Context, userId string) (*response.SummaryResponse, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.SummaryResponse), args.Error(1)
}

func TestSummaryHandler_Summarize_Success(t *testing.T) {
	mockService := new(MockSummaryService)
	handler := NewSummaryHandler(mockService, zap.NewNop(), "test")

	mockService.On("Summarize", mock.Anything, "user-1").
		Return(&response.SummaryResponse{Summary: "Project is on track."}, nil)

	w := httptest.NewRecorder()
	handler.Summarize(w, authedRequest(http.MethodPost, "/api/ai/summary", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Project is on track.", result["summary"])
}

func TestSummaryHandler_Summarize_NoUserInContext(t *testing.T) {
	mockService := new(MockSummaryService)
	handler := NewSummaryHandler(mockService, zap.NewNop(), "test")

	req := httptest.NewRequest(http.MethodPost, "/api/ai/summary", nil)
	w := httptest.NewRecorder()

	handler.Summarize(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Summarize")
}

func TestSummaryHandler_Summarize_UpstreamError(t *testing.T) {
	mockService := new(MockSummaryService)
	handler := NewSummaryHandler(mockService, zap.NewNop(), "test")

	mockService.On("Summarize", mock.Anything, "user-1").
		Return(nil, service.WrapError(service.ErrSummaryFailed, nil))

	w := httptest.NewRecorder()
	handler.Summarize(w, authedRequest(http.MethodPost, "/api/ai/summary", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "UPSTREAM_ERROR", errResp.Error.Code)
}
