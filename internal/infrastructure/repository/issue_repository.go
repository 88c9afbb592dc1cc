package repository

import (
	"context"

	"github.com/dkuznetsov/issueboard/internal/domain"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/dto"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	insertIssueQuery = `
INSERT INTO issues(id, title, description, status, priority, project_id, creator_id, assignee_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, title, description, status, priority, project_id, creator_id, assignee_id, created_at;`

	selectIssuesByOwnerQuery = `
SELECT
    i.id,
    i.title,
    i.description,
    i.status,
    i.priority,
    i.project_id,
    i.creator_id,
    i.assignee_id,
    i.created_at
FROM issues i
JOIN projects p ON p.id = i.project_id
WHERE p.owner_id = $1 AND i.deleted_at IS NULL
ORDER BY i.created_at DESC, i.id;`

	updateIssueQuery = `
UPDATE issues i
SET title = COALESCE($1, i.title),
    description = COALESCE($2, i.description),
    status = COALESCE($3, i.status),
    priority = COALESCE($4, i.priority),
    assignee_id = COALESCE($5, i.assignee_id)
FROM projects p
WHERE i.id = $6 AND p.id = i.project_id AND p.owner_id = $7 AND i.deleted_at IS NULL
RETURNING i.id, i.title, i.description, i.status, i.priority, i.project_id, i.creator_id, i.assignee_id, i.created_at;`

	updateIssueStatusQuery = `
UPDATE issues i
SET status = $1
FROM projects p
WHERE i.id = $2 AND p.id = i.project_id AND p.owner_id = $3 AND i.deleted_at IS NULL
RETURNING i.id, i.title, i.description, i.status, i.priority, i.project_id, i.creator_id, i.assignee_id, i.created_at;`

	softDeleteIssueQuery = `
UPDATE issues i
SET deleted_at = CURRENT_TIMESTAMP
FROM projects p
WHERE i.id = $1 AND p.id = i.project_id AND p.owner_id = $2 AND i.deleted_at IS NULL;`
)

type IssueRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewIssueRepository(db *pgxpool.Pool, log *zap.Logger) *IssueRepository {
	return &IssueRepository{
		db:  db,
		log: log,
	}
}

func (r *IssueRepository) Create(ctx context.Context, d *dto.CreateIssueDTO) (*domain.Issue, error) {
	r.log.Info("create issue started",
		zap.String("issue_id", d.Id),
		zap.String("project_id", d.ProjectId),
	)

	issue := &domain.Issue{}
	err := r.db.QueryRow(ctx, insertIssueQuery,
		d.Id,
		d.Title,
		d.Description,
		d.Status,
		d.Priority,
		d.ProjectId,
		d.CreatorId,
		d.AssigneeId,
	).Scan(
		&issue.Id,
		&issue.Title,
		&issue.Description,
		&issue.Status,
		&issue.Priority,
		&issue.ProjectId,
		&issue.CreatorId,
		&issue.AssigneeId,
		&issue.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to insert issue",
			zap.String("issue_id", d.Id),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	return issue, nil
}

// ListByOwner возвращает неудаленные задачи всех проектов пользователя,
// новые первыми.
func (r *IssueRepository) ListByOwner(ctx context.Context, ownerId string) ([]*domain.Issue, error) {
	rows, err := r.db.Query(ctx, selectIssuesByOwnerQuery, ownerId)
	if err != nil {
		r.log.Error("failed to list issues",
			zap.String("owner_id", ownerId),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	defer rows.Close()

	issues := make([]*domain.Issue, 0)
	for rows.Next() {
		issue := &domain.Issue{}
		if err := rows.Scan(
			&issue.Id,
			&issue.Title,
			&issue.Description,
			&issue.Status,
			&issue.Priority,
			&issue.ProjectId,
			&issue.CreatorId,
			&issue.AssigneeId,
			&issue.CreatedAt,
		); err != nil {
			return nil, handleDBError(err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, handleDBError(err)
	}

	return issues, nil
}

func (r *IssueRepository) Update(ctx context.Context, d *dto.UpdateIssueDTO) (*domain.Issue, error) {
	r.log.Info("update issue started",
		zap.String("issue_id", d.IssueId),
		zap.String("owner_id", d.OwnerId),
	)

	issue := &domain.Issue{}
	err := r.db.QueryRow(ctx, updateIssueQuery,
		d.Title,
		d.Description,
		d.Status,
		d.Priority,
		d.AssigneeId,
		d.IssueId,
		d.OwnerId,
	).Scan(
		&issue.Id,
		&issue.Title,
		&issue.Description,
		&issue.Status,
		&issue.Priority,
		&issue.ProjectId,
		&issue.CreatorId,
		&issue.AssigneeId,
		&issue.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to update issue",
			zap.String("issue_id", d.IssueId),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	return issue, nil
}

func (r *IssueRepository) UpdateStatus(ctx context.Context, d *dto.UpdateStatusDTO) (*domain.Issue, error) {
	r.log.Info("update issue status started",
		zap.String("issue_id", d.IssueId),
		zap.String("status", string(d.Status)),
	)

	issue := &domain.Issue{}
	err := r.db.QueryRow(ctx, updateIssueStatusQuery, d.Status, d.IssueId, d.OwnerId).Scan(
		&issue.Id,
		&issue.Title,
		&issue.Description,
		&issue.Status,
		&issue.Priority,
		&issue.ProjectId,
		&issue.CreatorId,
		&issue.AssigneeId,
		&issue.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to update issue status",
			zap.String("issue_id", d.IssueId),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	return issue, nil
}

func (r *IssueRepository) SoftDelete(ctx context.Context, d *dto.SoftDeleteIssueDTO) error {
	r.log.Info("soft delete issue started",
		zap.String("issue_id", d.IssueId),
		zap.String("owner_id", d.OwnerId),
	)

	cmdTag, err := r.db.Exec(ctx, softDeleteIssueQuery, d.IssueId, d.OwnerId)
	if err != nil {
		r.log.Error("failed to soft delete issue",
			zap.String("issue_id", d.IssueId),
			zap.Error(err),
		)
		return handleDBError(err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.log.Warn("issue not found while deleting", zap.String("issue_id", d.IssueId))
		return ErrNotFound
	}

	return nil
}
