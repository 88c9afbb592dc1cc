package repository

import (
	"context"

	"github.com/dkuznetsov/issueboard/internal/domain"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/dto"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	insertUserQuery = `
INSERT INTO users(id, email, password_hash, name, avatar_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, password_hash, name, avatar_url, created_at;`

	selectUserByEmailQuery = `
SELECT id, email, password_hash, name, avatar_url, created_at
FROM users
WHERE email = $1;`

	selectUserByIdQuery = `
SELECT id, email, password_hash, name, avatar_url, created_at
FROM users
WHERE id = $1;`

	updateProfileQuery = `
UPDATE users
SET name = $1, avatar_url = $2
WHERE id = $3
RETURNING id, email, password_hash, name, avatar_url, created_at;`

	updatePasswordQuery = `
UPDATE users
SET password_hash = $1
WHERE id = $2;`
)

type UserRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, log *zap.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
	}
}

func (r *UserRepository) Create(ctx context.Context, d *dto.CreateUserDTO) (*domain.User, error) {
	r.log.Info("create user started",
		zap.String("user_id", d.Id),
		zap.String("email", d.Email),
	)

	user := &domain.User{}
	err := r.db.QueryRow(ctx, insertUserQuery, d.Id, d.Email, d.PasswordHash, d.Name, d.AvatarURL).Scan(
		&user.Id,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to insert user",
			zap.String("email", d.Email),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRow(ctx, selectUserByEmailQuery, email).Scan(
		&user.Id,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, handleDBError(err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRow(ctx, selectUserByIdQuery, id).Scan(
		&user.Id,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, handleDBError(err)
	}

	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, d *dto.UpdateProfileDTO) (*domain.User, error) {
	r.log.Info("update profile started",
		zap.String("user_id", d.UserId),
	)

	user := &domain.User{}
	err := r.db.QueryRow(ctx, updateProfileQuery, d.Name, d.AvatarURL, d.UserId).Scan(
		&user.Id,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to update profile",
			zap.String("user_id", d.UserId),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, d *dto.UpdatePasswordDTO) error {
	r.log.Info("update password started",
		zap.String("user_id", d.UserId),
	)

	cmdTag, err := r.db.Exec(ctx, updatePasswordQuery, d.PasswordHash, d.UserId)
	if err != nil {
		r.log.Error("failed to update password",
			zap.String("user_id", d.UserId),
			zap.Error(err),
		)
		return handleDBError(err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.log.Warn("user not found while updating password", zap.String("user_id", d.UserId))
		return ErrNotFound
	}

	return nil
}
