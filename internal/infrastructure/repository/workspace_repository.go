package repository

import (
	"context"

	"github.com/dkuznetsov/issueboard/internal/domain"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/dto"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/result"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	insertTeamQuery = `
INSERT INTO teams(id, name, owner_id)
VALUES ($1, $2, $3)
RETURNING id, name, owner_id, created_at;`

	insertTeamMemberQuery = `
INSERT INTO team_members(team_id, user_id, role)
VALUES ($1, $2, $3)
ON CONFLICT (team_id, user_id) DO NOTHING;`

	insertProjectQuery = `
INSERT INTO projects(id, name, description, team_id, owner_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, description, team_id, owner_id, created_at;`

	insertSeedIssueQuery = `
INSERT INTO issues(id, title, description, status, priority, project_id, creator_id, assignee_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
)

type WorkspaceRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewWorkspaceRepository(db *pgxpool.Pool, log *zap.Logger) *WorkspaceRepository {
	return &WorkspaceRepository{
		db:  db,
		log: log,
	}
}

// Seed создает команду, членство OWNER, проект и стартовые задачи
// в одной транзакции, чтобы не оставлять частичное состояние.
func (r *WorkspaceRepository) Seed(ctx context.Context, d *dto.SeedWorkspaceDTO, issues []*dto.CreateIssueDTO) (*result.SeedWorkspaceResult, error) {
	r.log.Info("seed workspace started",
		zap.String("owner_id", d.OwnerId),
		zap.Int("seed_issues", len(issues)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer tx.Rollback(ctx)

	// Создаем команду
	team := &domain.Team{}
	err = tx.QueryRow(ctx, insertTeamQuery, d.TeamId, d.TeamName, d.OwnerId).Scan(
		&team.Id,
		&team.Name,
		&team.OwnerId,
		&team.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to insert team",
			zap.String("owner_id", d.OwnerId),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	// Владелец входит в команду с ролью OWNER
	if _, err := tx.Exec(ctx, insertTeamMemberQuery, team.Id, d.OwnerId, domain.RoleOwner); err != nil {
		r.log.Error("failed to insert team member",
			zap.String("team_id", team.Id),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	// Создаем проект
	project := &domain.Project{}
	err = tx.QueryRow(ctx, insertProjectQuery, d.ProjectId, d.ProjectName, d.ProjectDescription, team.Id, d.OwnerId).Scan(
		&project.Id,
		&project.Name,
		&project.Description,
		&project.TeamId,
		&project.OwnerId,
		&project.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to insert project",
			zap.String("team_id", team.Id),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	// Записываем стартовые задачи в заданном порядке
	for _, issue := range issues {
		if _, err := tx.Exec(ctx, insertSeedIssueQuery,
			issue.Id,
			issue.Title,
			issue.Description,
			issue.Status,
			issue.Priority,
			project.Id,
			issue.CreatorId,
			issue.AssigneeId,
		); err != nil {
			r.log.Error("failed to insert seed issue",
				zap.String("project_id", project.Id),
				zap.String("title", issue.Title),
				zap.Error(err),
			)
			return nil, handleDBError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("failed to commit workspace seeding", zap.String("owner_id", d.OwnerId), zap.Error(err))
		return nil, handleDBError(err)
	}

	r.log.Info("workspace seeded",
		zap.String("team_id", team.Id),
		zap.String("project_id", project.Id),
	)
	return &result.SeedWorkspaceResult{
		Team:    team,
		Project: project,
	}, nil
}

const selectDefaultProjectQuery = `
SELECT id, name, description, team_id, owner_id, created_at
FROM projects
WHERE owner_id = $1
ORDER BY created_at
LIMIT 1;`

// DefaultProject возвращает самый ранний проект пользователя.
func (r *WorkspaceRepository) DefaultProject(ctx context.Context, ownerId string) (*domain.Project, error) {
	project := &domain.Project{}
	err := r.db.QueryRow(ctx, selectDefaultProjectQuery, ownerId).Scan(
		&project.Id,
		&project.Name,
		&project.Description,
		&project.TeamId,
		&project.OwnerId,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, handleDBError(err)
	}

	return project, nil
}
