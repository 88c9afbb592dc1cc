package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkuznetsov/issueboard/internal/auth"
	"github.com/dkuznetsov/issueboard/internal/domain"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/dto"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/repository"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/request"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	updateProfileError  = errors.New("update profile error")
	checkPasswordError  = errors.New("check password error")
	changePasswordError = errors.New("change password error")
)

// Интерфейс репозитория
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, d *dto.UpdateProfileDTO) (*domain.User, error)
	UpdatePassword(ctx context.Context, d *dto.UpdatePasswordDTO) error
}

type ProfileService struct {
	repo ProfileRepository
	log  *zap.Logger
}

func NewProfileService(repo ProfileRepository, log *zap.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log,
	}
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userId string, req *request.UpdateProfileRequest) (*response.UpdateProfileResponse, error) {
	s.log.Info("update profile request accepted",
		zap.String("user_id", userId),
	)

	// Валидация
	if len(req.Name) < 1 || len(req.Name) > 50 {
		return nil, WrapError(ErrInvalidName, nil)
	}

	// Собираем dto
	var avatar *string
	if req.ProfileImage != "" {
		avatar = &req.ProfileImage
	}
	d := &dto.UpdateProfileDTO{
		UserId:    userId,
		Name:      req.Name,
		AvatarURL: avatar,
	}

	// Запрос в бд
	user, err := s.repo.UpdateProfile(ctx, d)
	if err != nil {
		s.log.Error("failed to update profile",
			zap.String("user_id", userId),
			zap.Error(err),
		)

		// Маппим ошибки
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrUserNotFound, err)
		}

		// Неизвестная ошибка
		return nil, fmt.Errorf("%w: %w", updateProfileError, err)
	}

	s.log.Info("profile updated", zap.String("user_id", user.Id))

	// Ответ
	return &response.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User: response.UserPayload{
			Id:    user.Id,
			Email: user.Email,
			Name:  user.Name,
			Image: user.AvatarURL,
		},
	}, nil
}

func (s *ProfileService) CheckPassword(ctx context.Context, userId string) (*response.CheckPasswordResponse, error) {
	// Запрос в бд
	user, err := s.repo.GetByID(ctx, userId)
	if err != nil {
		// Маппим ошибки
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrUserNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", checkPasswordError, err)
	}

	// Ответ
	return &response.CheckPasswordResponse{
		HasPassword: user.PasswordHash != nil && *user.PasswordHash != "",
	}, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, userId string, req *request.ChangePasswordRequest) (*response.ChangePasswordResponse, error) {
	s.log.Info("change password request accepted",
		zap.String("user_id", userId),
	)

	// Запрос в бд
	user, err := s.repo.GetByID(ctx, userId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrUserNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", changePasswordError, err)
	}

	// Аккаунт только с OAuth-входом менять пароль не может,
	// независимо от содержимого запроса
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		return nil, WrapError(ErrNoPasswordSet, nil)
	}

	// Валидация
	if len(req.NewPassword) < 6 || len(req.NewPassword) > 100 {
		return nil, WrapError(ErrInvalidNewPassword, nil)
	}

	// Неверный текущий пароль оставляет хэш нетронутым
	if !auth.CheckPassword(*user.PasswordHash, req.CurrentPassword) {
		return nil, WrapError(ErrWrongPassword, nil)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", changePasswordError, err)
	}

	// Запрос в бд
	if err := s.repo.UpdatePassword(ctx, &dto.UpdatePasswordDTO{
		UserId:       userId,
		PasswordHash: hash,
	}); err != nil {
		s.log.Error("failed to change password",
			zap.String("user_id", userId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", changePasswordError, err)
	}

	s.log.Info("password changed", zap.String("user_id", userId))

	// Ответ
	return &response.ChangePasswordResponse{
		Message: "Password changed successfully",
	}, nil
}
