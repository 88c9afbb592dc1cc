package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkuznetsov/issueboard/internal/auth"
	"github.com/dkuznetsov/issueboard/internal/domain"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/dto"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/models/result"
	"github.com/dkuznetsov/issueboard/internal/infrastructure/repository"
	"github.com/dkuznetsov/issueboard/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository мок репозитория для тестов
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, d *dto.CreateUserDTO) (*domain.User, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockWorkspaceRepository мок репозитория для тестов
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Seed(ctx context.Context, d *dto.SeedWorkspaceDTO, issues []*dto.CreateIssueDTO) (*result.SeedWorkspaceResult, error) {
	args := m.Called(ctx, d, issues)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*result.SeedWorkspaceResult), args.Error(1)
}

// MockTokenIssuer мок менеджера токенов для тестов
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userId, email string) (string, error) {
	args := m.Called(userId, email)
	return args.String(0), args.Error(1)
}

// fakeOAuthProvider фейковый провайдер для тестов
type fakeOAuthProvider struct {
	identity *auth.Identity
	err      error
}

func (p *fakeOAuthProvider) AuthURL(state string) string {
	return "https://provider.example/auth?state=" + state
}

func (p *fakeOAuthProvider) Identity(ctx context.Context, code string) (*auth.Identity, error) {
	return p.identity, p.err
}

func newAuthService(users *MockUserRepository, workspace *MockWorkspaceRepository, tokens *MockTokenIssuer, oauth auth.OAuthProvider) *AuthService {
	return NewAuthService(users, workspace, tokens, oauth, zap.NewNop())
}

func TestAuthService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, &fakeOAuthProvider{})

	req := &request.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "New User",
	}

	createdUser := &domain.User{
		Id:        "user-1",
		Email:     "new@example.com",
		Name:      "New User",
		CreatedAt: time.Now(),
	}

	mockUsers.On("Create", mock.Anything, mock.MatchedBy(func(d *dto.CreateUserDTO) bool {
		// Пароль уходит в бд только хэшем
		return d.Email == "new@example.com" &&
			d.PasswordHash != nil &&
			*d.PasswordHash != "secret123" &&
			auth.CheckPassword(*d.PasswordHash, "secret123")
	})).Return(createdUser, nil)

	mockWorkspace.On("Seed", mock.Anything, mock.MatchedBy(func(d *dto.SeedWorkspaceDTO) bool {
		return d.OwnerId == "user-1" && d.TeamName == "Personal Team" && d.ProjectName == "My Project"
	}), mock.Anything).Return(&result.SeedWorkspaceResult{}, nil)

	resp, err := service.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "User created successfully", resp.Message)
	assert.Equal(t, "user-1", resp.User.Id)
	assert.Equal(t, "new@example.com", resp.User.Email)
	mockUsers.AssertExpectations(t)
	mockWorkspace.AssertExpectations(t)
}

func TestAuthService_Register_SeedsSixIssuesInFixedOrder(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, &fakeOAuthProvider{})

	createdUser := &domain.User{Id: "user-1", Email: "new@example.com", Name: "New User"}
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(createdUser, nil)

	var seeded []*dto.CreateIssueDTO
	mockWorkspace.On("Seed", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			seeded = args.Get(2).([]*dto.CreateIssueDTO)
		}).
		Return(&result.SeedWorkspaceResult{}, nil)

	_, err := service.Register(context.Background(), &request.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "New User",
	})

	require.NoError(t, err)
	require.Len(t, seeded, 6)

	wantTitles := []string{
		"Implement user authentication",
		"Design dashboard UI",
		"Add issue tracking",
		"Setup database schema",
		"Write unit tests",
		"Deploy to production",
	}
	for i, want := range wantTitles {
		assert.Equal(t, want, seeded[i].Title)
		assert.Equal(t, "user-1", seeded[i].CreatorId)
	}

	assert.Equal(t, domain.StatusDone, seeded[0].Status)
	assert.Equal(t, domain.PriorityHigh, seeded[0].Priority)
	assert.Equal(t, domain.StatusInProgress, seeded[2].Status)
	assert.Equal(t, domain.StatusBacklog, seeded[4].Status)
	assert.Equal(t, domain.PriorityLow, seeded[4].Priority)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, &fakeOAuthProvider{})

	resp, err := service.Register(context.Background(), &request.RegisterRequest{
		Email: "new@example.com",
	})

	assert.Nil(t, resp)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	mockUsers.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_EmailExists(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, &fakeOAuthProvider{})

	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrAlreadyExists)

	resp, err := service.Register(context.Background(), &request.RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret123",
		Name:     "New User",
	})

	assert.Nil(t, resp)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	// Без созданного пользователя рабочее пространство не сеем
	mockWorkspace.AssertNotCalled(t, "Seed")
}

func TestAuthService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, &fakeOAuthProvider{})

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		Id:           "user-1",
		Email:        "user@example.com",
		PasswordHash: &hash,
		Name:         "Test User",
	}, nil)
	mockTokens.On("Issue", "user-1", "user@example.com").Return("signed-token", nil)

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "user-1", resp.User.Id)
	mockTokens.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, &fakeOAuthProvider{})

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		Id:           "user-1",
		Email:        "user@example.com",
		PasswordHash: &hash,
	}, nil)

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})

	assert.Nil(t, resp)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	mockTokens.AssertNotCalled(t, "Issue")
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, &fakeOAuthProvider{})

	mockUsers.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})

	assert.Nil(t, resp)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	// Несуществующий email неотличим от неверного пароля
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Login_OAuthOnlyAccount(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, &fakeOAuthProvider{})

	// Аккаунт без пароля: вход только через OAuth
	mockUsers.On("GetByEmail", mock.Anything, "oauth@example.com").Return(&domain.User{
		Id:    "user-1",
		Email: "oauth@example.com",
	}, nil)

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "oauth@example.com",
		Password: "anything",
	})

	assert.Nil(t, resp)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_OAuthCallback_ExistingUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	provider := &fakeOAuthProvider{identity: &auth.Identity{
		Email: "user@example.com",
		Name:  "Test User",
	}}
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, provider)

	mockUsers.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		Id:    "user-1",
		Email: "user@example.com",
		Name:  "Test User",
	}, nil)
	mockTokens.On("Issue", "user-1", "user@example.com").Return("signed-token", nil)

	resp, err := service.OAuthCallback(context.Background(), &request.OAuthCallbackRequest{Code: "auth-code"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.Token)
	// Привязка по email: новый аккаунт не создается и не сеется
	mockUsers.AssertNotCalled(t, "Create")
	mockWorkspace.AssertNotCalled(t, "Seed")
}

func TestAuthService_OAuthCallback_NewUserSeedsWorkspace(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	provider := &fakeOAuthProvider{identity: &auth.Identity{
		Email:     "fresh@example.com",
		Name:      "Fresh User",
		AvatarURL: "https://cdn.example/avatar.png",
	}}
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, provider)

	mockUsers.On("GetByEmail", mock.Anything, "fresh@example.com").Return(nil, repository.ErrNotFound)
	mockUsers.On("Create", mock.Anything, mock.MatchedBy(func(d *dto.CreateUserDTO) bool {
		// OAuth-аккаунт создается без пароля
		return d.Email == "fresh@example.com" &&
			d.PasswordHash == nil &&
			d.AvatarURL != nil && *d.AvatarURL == "https://cdn.example/avatar.png"
	})).Return(&domain.User{Id: "user-2", Email: "fresh@example.com", Name: "Fresh User"}, nil)
	mockWorkspace.On("Seed", mock.Anything, mock.Anything, mock.Anything).Return(&result.SeedWorkspaceResult{}, nil)
	mockTokens.On("Issue", "user-2", "fresh@example.com").Return("signed-token", nil)

	resp, err := service.OAuthCallback(context.Background(), &request.OAuthCallbackRequest{Code: "auth-code"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.Token)
	mockUsers.AssertExpectations(t)
	mockWorkspace.AssertExpectations(t)
}

func TestAuthService_OAuthCallback_ProviderError(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWorkspace := new(MockWorkspaceRepository)
	mockTokens := new(MockTokenIssuer)
	provider := &fakeOAuthProvider{err: errors.New("exchange failed")}
	service := newAuthService(mockUsers, mockWorkspace, mockTokens, provider)

	resp, err := service.OAuthCallback(context.Background(), &request.OAuthCallbackRequest{Code: "bad-code"})

	assert.Nil(t, resp)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
}

func TestAuthService_OAuthURL(t *testing.T) {
	service := newAuthService(new(MockUserRepository), new(MockWorkspaceRepository), new(MockTokenIssuer), &fakeOAuthProvider{})

	resp, err := service.OAuthURL()

	require.NoError(t, err)
	assert.NotEmpty(t, resp.State)
	assert.Contains(t, resp.URL, resp.State)
}
