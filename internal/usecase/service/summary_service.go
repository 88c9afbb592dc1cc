package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkuznetsov/issueboard/internal/summary"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	"go.uber.org/zap"
)

var summaryError = errors.New("generate summary error")

type SummaryClient interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

type SummaryService struct {
	issues IssueRepository
	client SummaryClient
	log    *zap.Logger
}

func NewSummaryService(issues IssueRepository, client SummaryClient, log *zap.Logger) *SummaryService {
	return &SummaryService{
		issues: issues,
		client: client,
		log:    log,
	}
}

// Summarize собирает статистику по задачам пользователя и запрашивает
// краткое описание у внешней модели. Для пустого списка задач возвращает
// фиксированный ответ без обращения к внешнему сервису.
func (s *SummaryService) Summarize(ctx context.Context, userId string) (*response.SummaryResponse, error) {
	s.log.Info("summary request accepted",
		zap.String("user_id", userId),
	)

	// Запрос в бд
	issues, err := s.issues.ListByOwner(ctx, userId)
	if err != nil {
		s.log.Error("failed to load issues for summary",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", summaryError, err)
	}

	// Без задач внешний сервис не вызываем
	if len(issues) == 0 {
		return &response.SummaryResponse{Summary: summary.EmptySummary}, nil
	}

	prompt := summary.BuildPrompt(issues)

	text, err := s.client.Summarize(ctx, prompt)
	if err != nil {
		s.log.Error("summary generation failed",
			zap.String("user_id", userId),
			zap.Error(err),
		)

		// Маппим ошибки
		if errors.Is(err, summary.ErrNoAPIKey) {
			return nil, WrapError(ErrSummaryNotConfigured, err)
		}
		return nil, WrapError(ErrSummaryFailed, err)
	}

	s.log.Info("summary generated",
		zap.String("user_id", userId),
		zap.Int("issues_count", len(issues)),
	)

	// Ответ
	return &response.SummaryResponse{Summary: text}, nil
}
