package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkuznetsov/issueboard/internal/board"
	"github.com/dkuznetsov/issueboard/internal/domain"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/dto"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/repository"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/request"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	createIssueError = errors.New("create issue error")
	listIssuesError  = errors.New("list issues error")
	updateIssueError = errors.New("update issue error")
	deleteIssueError = errors.New("delete issue error")
	moveIssueError   = errors.New("move issue error")
)

// Интерфейс репозитория
type IssueRepository interface {
	Create(ctx context.Context, d *dto.CreateIssueDTO) (*domain.Issue, error)
	ListByOwner(ctx context.Context, ownerId string) ([]*domain.Issue, error)
	Update(ctx context.Context, d *dto.UpdateIssueDTO) (*domain.Issue, error)
	UpdateStatus(ctx context.Context, d *dto.UpdateStatusDTO) (*domain.Issue, error)
	SoftDelete(ctx context.Context, d *dto.SoftDeleteIssueDTO) error
}

// Интерфейс репозитория
type ProjectRepository interface {
	DefaultProject(ctx context.Context, ownerId string) (*domain.Project, error)
}

type IssueService struct {
	repo     IssueRepository
	projects ProjectRepository
	log      *zap.Logger
}

func NewIssueService(repo IssueRepository, projects ProjectRepository, log *zap.Logger) *IssueService {
	return &IssueService{
		repo:     repo,
		projects: projects,
		log:      log,
	}
}

func (s *IssueService) Create(ctx context.Context, userId string, req *request.CreateIssueRequest) (*response.IssueResponse, error) {
	s.log.Info("create issue request accepted",
		zap.String("user_id", userId),
		zap.String("title", req.Title),
	)

	// Валидация
	if req.Title == "" {
		return nil, WrapError(ErrInvalidInput, errors.New("title is required"))
	}

	status := domain.Status(req.Status)
	if status == "" {
		status = domain.StatusBacklog
	}

	priority := domain.Priority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, WrapError(ErrInvalidInput, fmt.Errorf("unknown priority %q", req.Priority))
	}

	// Новые задачи попадают в проект по умолчанию
	project, err := s.projects.DefaultProject(ctx, userId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrUserNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", createIssueError, err)
	}

	// Собираем dto
	var description *string
	if req.Description != "" {
		description = &req.Description
	}
	d := &dto.CreateIssueDTO{
		Id:          uuid.NewString(),
		Title:       req.Title,
		Description: description,
		Status:      status,
		Priority:    priority,
		ProjectId:   project.Id,
		CreatorId:   userId,
	}

	// Запрос в бд
	issue, err := s.repo.Create(ctx, d)
	if err != nil {
		s.log.Error("failed to create issue",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", createIssueError, err)
	}

	// Ответ
	return issueResponse(issue), nil
}

func (s *IssueService) List(ctx context.Context, userId string) (*response.IssueListResponse, error) {
	// Запрос в бд
	issues, err := s.repo.ListByOwner(ctx, userId)
	if err != nil {
		s.log.Error("failed to list issues",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", listIssuesError, err)
	}

	// Ответ
	resp := &response.IssueListResponse{Issues: make([]*response.IssueResponse, 0, len(issues))}
	for _, issue := range issues {
		resp.Issues = append(resp.Issues, issueResponse(issue))
	}
	return resp, nil
}

func (s *IssueService) Update(ctx context.Context, userId, issueId string, req *request.UpdateIssueRequest) (*response.IssueResponse, error) {
	s.log.Info("update issue request accepted",
		zap.String("user_id", userId),
		zap.String("issue_id", issueId),
	)

	// Валидация
	if req.Title != nil && *req.Title == "" {
		return nil, WrapError(ErrInvalidInput, errors.New("title cannot be empty"))
	}

	// Собираем dto
	d := &dto.UpdateIssueDTO{
		IssueId:     issueId,
		OwnerId:     userId,
		Title:       req.Title,
		Description: req.Description,
		AssigneeId:  req.AssigneeId,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		d.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		if !priority.Valid() {
			return nil, WrapError(ErrInvalidInput, fmt.Errorf("unknown priority %q", *req.Priority))
		}
		d.Priority = &priority
	}

	// Запрос в бд
	issue, err := s.repo.Update(ctx, d)
	if err != nil {
		s.log.Error("failed to update issue",
			zap.String("issue_id", issueId),
			zap.Error(err),
		)

		// Маппим ошибки
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrIssueNotFound, err)
		}

		// Неизвестная ошибка
		return nil, fmt.Errorf("%w: %w", updateIssueError, err)
	}

	// Ответ
	return issueResponse(issue), nil
}

func (s *IssueService) Delete(ctx context.Context, userId, issueId string) (*response.DeleteIssueResponse, error) {
	s.log.Info("delete issue request accepted",
		zap.String("user_id", userId),
		zap.String("issue_id", issueId),
	)

	// Запрос в бд: мягкое удаление, запись остается
	err := s.repo.SoftDelete(ctx, &dto.SoftDeleteIssueDTO{
		IssueId: issueId,
		OwnerId: userId,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrIssueNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", deleteIssueError, err)
	}

	// Ответ
	return &response.DeleteIssueResponse{Message: "Issue deleted successfully"}, nil
}

func (s *IssueService) Board(ctx context.Context, userId string) (*response.BoardResponse, error) {
	// Запрос в бд
	issues, err := s.repo.ListByOwner(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", listIssuesError, err)
	}

	// Раскладываем по колонкам
	columns := board.Partition(issues)

	// Ответ
	resp := &response.BoardResponse{Columns: make([]*response.BoardColumnResponse, 0, len(columns))}
	for _, column := range columns {
		col := &response.BoardColumnResponse{
			Status: string(column.Status),
			Issues: make([]*response.IssueResponse, 0, len(column.Issues)),
		}
		for _, issue := range column.Issues {
			col.Issues = append(col.Issues, issueResponse(issue))
		}
		resp.Columns = append(resp.Columns, col)
	}
	return resp, nil
}

// intentRecorder собирает намерение, опубликованное реконсилятором.
type intentRecorder struct {
	intent *board.Intent
}

func (r *intentRecorder) MoveIssue(intent board.Intent) {
	r.intent = &intent
}

// Move проигрывает жест drag-and-drop через реконсилятор и применяет
// полученное намерение как обновление статуса. Неразрешимая цель
// сброса и сброс в исходную колонку считаются no-op, не ошибкой.
func (s *IssueService) Move(ctx context.Context, userId string, req *request.MoveIssueRequest) (*response.MoveIssueResponse, error) {
	s.log.Info("move issue request accepted",
		zap.String("user_id", userId),
		zap.String("issue_id", req.IssueId),
		zap.String("over_id", req.OverId),
	)

	// Валидация
	if req.IssueId == "" {
		return nil, WrapError(ErrInvalidInput, errors.New("issue_id is required"))
	}

	// Запрос в бд
	issues, err := s.repo.ListByOwner(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", moveIssueError, err)
	}

	var dragged *domain.Issue
	for _, issue := range issues {
		if issue.Id == req.IssueId {
			dragged = issue
			break
		}
	}
	if dragged == nil {
		return nil, WrapError(ErrIssueNotFound, nil)
	}

	recorder := &intentRecorder{}
	reconciler := board.NewReconciler(recorder)
	reconciler.DragStart(dragged)
	if !reconciler.DragEnd(issues, req.OverId) {
		// Намерение не опубликовано: статус не меняется
		return &response.MoveIssueResponse{
			Moved:  false,
			Status: string(dragged.Status),
		}, nil
	}

	// Применяем намерение
	issue, err := s.repo.UpdateStatus(ctx, &dto.UpdateStatusDTO{
		IssueId: recorder.intent.IssueId,
		OwnerId: userId,
		Status:  recorder.intent.Status,
	})
	if err != nil {
		s.log.Error("failed to apply move intent",
			zap.String("issue_id", req.IssueId),
			zap.Error(err),
		)

		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrIssueNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", moveIssueError, err)
	}

	s.log.Info("issue moved",
		zap.String("issue_id", issue.Id),
		zap.String("status", string(issue.Status)),
	)

	// Ответ
	return &response.MoveIssueResponse{
		Moved:  true,
		Status: string(issue.Status),
	}, nil
}

func issueResponse(issue *domain.Issue) *response.IssueResponse {
	return &response.IssueResponse{
		Id:          issue.Id,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      string(issue.Status),
		Priority:    string(issue.Priority),
		ProjectId:   issue.ProjectId,
		CreatedAt:   issue.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
