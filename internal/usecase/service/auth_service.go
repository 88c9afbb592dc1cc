package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dkuznetsov/issueboard/internal/auth"
	"github.com/dkuznetsov/issueboard/internal/domain"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/dto"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/result"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/repository"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/request"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/response"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	registerError = errors.New("register user error")
	loginError    = errors.New("login error")
	oauthError    = errors.New("oauth login error")
)

const (
	defaultTeamName           = "Personal Team"
	defaultProjectName        = "My Project"
	defaultProjectDescription = "Your first project"
)

// Интерфейс репозитория
type UserRepository interface {
	Create(ctx context.Context, d *dto.CreateUserDTO) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Интерфейс репозитория
type WorkspaceRepository interface {
	Seed(ctx context.Context, d *dto.SeedWorkspaceDTO, issues []*dto.CreateIssueDTO) (*result.SeedWorkspaceResult, error)
}

type TokenIssuer interface {
	Issue(userId, email string) (string, error)
}

type AuthService struct {
	users     UserRepository
	workspace WorkspaceRepository
	tokens    TokenIssuer
	oauth     auth.OAuthProvider
	log       *zap.Logger
}

func NewAuthService(users UserRepository, workspace WorkspaceRepository, tokens TokenIssuer, oauth auth.OAuthProvider, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		workspace: workspace,
		tokens:    tokens,
		oauth:     oauth,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	s.log.Info("register request accepted",
		zap.String("email", req.Email),
	)

	// Валидация
	if req.Email == "" || req.Password == "" {
		return nil, WrapError(ErrMissingFields, nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", registerError, err)
	}

	// Собираем dto
	d := &dto.CreateUserDTO{
		Id:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: &hash,
		Name:         req.Name,
	}

	// Запрос в бд
	user, err := s.users.Create(ctx, d)
	if err != nil {
		s.log.Error("failed to create user",
			zap.String("email", req.Email),
			zap.Error(err),
		)

		// Маппим ошибки
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, WrapError(ErrEmailExists, err)
		}

		// Неизвестная ошибка
		return nil, fmt.Errorf("%w: %w", registerError, err)
	}

	// Для нового аккаунта создаем команду, проект и стартовые задачи
	if err := s.seedWorkspace(ctx, user); err != nil {
		s.log.Error("failed to seed workspace",
			zap.String("user_id", user.Id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", registerError, err)
	}

	s.log.Info("user registered",
		zap.String("user_id", user.Id),
		zap.String("email", user.Email),
	)

	// Ответ
	return &response.RegisterResponse{
		Message: "User created successfully",
		User: response.UserPayload{
			Id:    user.Id,
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	s.log.Info("login request accepted",
		zap.String("email", req.Email),
	)

	// Валидация
	if req.Email == "" || req.Password == "" {
		return nil, WrapError(ErrInvalidCredentials, nil)
	}

	// Запрос в бд
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("%w: %w", loginError, err)
	}

	// Аккаунт только с OAuth-входом пароля не имеет
	if user.PasswordHash == nil || !auth.CheckPassword(*user.PasswordHash, req.Password) {
		return nil, WrapError(ErrInvalidCredentials, nil)
	}

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", loginError, err)
	}

	s.log.Info("user logged in", zap.String("user_id", user.Id))

	// Ответ
	return &response.LoginResponse{
		Token: token,
		User: response.UserPayload{
			Id:    user.Id,
			Email: user.Email,
			Name:  user.Name,
			Image: user.AvatarURL,
		},
	}, nil
}

func (s *AuthService) OAuthURL() (*response.OAuthURLResponse, error) {
	state, err := randomState()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", oauthError, err)
	}

	return &response.OAuthURLResponse{
		URL:   s.oauth.AuthURL(state),
		State: state,
	}, nil
}

// OAuthCallback обменивает код, привязывает внешний аккаунт по email
// либо создает нового пользователя с засеянным рабочим пространством.
func (s *AuthService) OAuthCallback(ctx context.Context, req *request.OAuthCallbackRequest) (*response.LoginResponse, error) {
	s.log.Info("oauth callback accepted")

	// Валидация
	if req.Code == "" {
		return nil, WrapError(ErrInvalidInput, nil)
	}

	identity, err := s.oauth.Identity(ctx, req.Code)
	if err != nil {
		s.log.Error("failed to resolve oauth identity", zap.Error(err))
		return nil, WrapError(ErrOAuthFailed, err)
	}

	// Привязка по email к уже существующему аккаунту
	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", oauthError, err)
		}

		// Первый вход через OAuth: аккаунт без пароля
		var avatar *string
		if identity.AvatarURL != "" {
			avatar = &identity.AvatarURL
		}
		user, err = s.users.Create(ctx, &dto.CreateUserDTO{
			Id:        uuid.NewString(),
			Email:     identity.Email,
			Name:      identity.Name,
			AvatarURL: avatar,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", oauthError, err)
		}

		if err := s.seedWorkspace(ctx, user); err != nil {
			s.log.Error("failed to seed workspace",
				zap.String("user_id", user.Id),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %w", oauthError, err)
		}
	}

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", oauthError, err)
	}

	s.log.Info("oauth user logged in", zap.String("user_id", user.Id))

	// Ответ
	return &response.LoginResponse{
		Token: token,
		User: response.UserPayload{
			Id:    user.Id,
			Email: user.Email,
			Name:  user.Name,
			Image: user.AvatarURL,
		},
	}, nil
}

func (s *AuthService) seedWorkspace(ctx context.Context, user *domain.User) error {
	d := &dto.SeedWorkspaceDTO{
		TeamId:             uuid.NewString(),
		TeamName:           defaultTeamName,
		ProjectId:          uuid.NewString(),
		ProjectName:        defaultProjectName,
		ProjectDescription: defaultProjectDescription,
		OwnerId:            user.Id,
	}

	_, err := s.workspace.Seed(ctx, d, sampleIssues(user.Id))
	return err
}

// sampleIssues возвращает стартовые задачи нового аккаунта, порядок фиксирован.
func sampleIssues(userId string) []*dto.CreateIssueDTO {
	seeds := []struct {
		title       string
		description string
		status      domain.Status
		priority    domain.Priority
	}{
		{"Implement user authentication", "Add login and signup functionality", domain.StatusDone, domain.PriorityHigh},
		{"Design dashboard UI", "Create responsive dashboard layout", domain.StatusDone, domain.PriorityMedium},
		{"Add issue tracking", "Implement CRUD operations for issues", domain.StatusInProgress, domain.PriorityHigh},
		{"Setup database schema", "Create models and migrations", domain.StatusInProgress, domain.PriorityMedium},
		{"Write unit tests", "Add test coverage for API routes", domain.StatusBacklog, domain.PriorityLow},
		{"Deploy to production", "Configure production deployment", domain.StatusBacklog, domain.PriorityMedium},
	}

	issues := make([]*dto.CreateIssueDTO, 0, len(seeds))
	for _, seed := range seeds {
		description := seed.description
		assignee := userId
		issues = append(issues, &dto.CreateIssueDTO{
			Id:          uuid.NewString(),
			Title:       seed.title,
			Description: &description,
			Status:      seed.status,
			Priority:    seed.priority,
			CreatorId:   userId,
			AssigneeId:  &assignee,
		})
	}
	return issues
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
