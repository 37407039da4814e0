package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	profiles     map[uuid.UUID]*models.Profile
	sessions     map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		profiles:     make(map[uuid.UUID]*models.Profile),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if profile, ok := m.profiles[userID]; ok {
		return profile, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	delete(m.sessions, refreshToken)
	return nil
}

func (m *mockAuthRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if user, ok := m.usersByID[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	}, map[string]string{"ip": "127.0.0.1"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("user ID должен быть установлен")
	}

	if res.Profile == nil || res.Profile.Name != "Test User" {
		t.Fatalf("профиль должен быть создан")
	}

	if res.Profile.Privacy != models.PrivacyPublic {
		t.Fatalf("новый профиль должен быть публичным")
	}

	if len(repo.sessions) != 1 {
		t.Fatalf("ожидалась одна сессия, получили %d", len(repo.sessions))
	}

	loginRes, err := service.Login(ctx, LoginInput{
		Email:    "test@example.com",
		Password: "password123",
	}, nil)
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	if loginRes.TokenPair.AccessToken == "" {
		t.Fatalf("ожидался access токен")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	if _, err := service.Register(ctx, RegisterInput{
		Email:    "dup@example.com",
		Password: "password123",
	}, nil); err != nil {
		t.Fatalf("первая регистрация вернула ошибку: %v", err)
	}

	if _, err := service.Register(ctx, RegisterInput{
		Email:    "dup@example.com",
		Password: "password456",
	}, nil); err == nil {
		t.Fatalf("повторная регистрация должна быть отклонена")
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "short@example.com",
		Password: "1234567",
	}, nil); err == nil {
		t.Fatalf("короткий пароль должен быть отклонён")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	if _, err := service.Register(ctx, RegisterInput{
		Email:    "user@example.com",
		Password: "password123",
	}, nil); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if _, err := service.Login(ctx, LoginInput{
		Email:    "user@example.com",
		Password: "wrong-password",
	}, nil); err == nil {
		t.Fatalf("вход с неверным паролем должен быть отклонён")
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "blocked@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleMember,
		IsActive:     false,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	if _, err := service.Login(context.Background(), LoginInput{
		Email:    "blocked@example.com",
		Password: "password123",
	}, nil); err == nil {
		t.Fatalf("вход заблокированного пользователя должен быть отклонён")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleMember,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	tokenPair, accessExp, refreshExp, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}
	if accessExp.After(refreshExp) {
		t.Fatalf("access должен истекать раньше refresh")
	}

	repo.sessions[tokenPair.RefreshToken] = &models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	newPair, err := service.Refresh(ctx, tokenPair.RefreshToken, nil)
	if err != nil {
		t.Fatalf("refresh вернул ошибку: %v", err)
	}

	if newPair.RefreshToken == tokenPair.RefreshToken {
		t.Fatalf("ожидался новый refresh токен")
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:    "bye@example.com",
		Password: "password123",
	}, nil)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if err := service.Logout(ctx, res.TokenPair.RefreshToken); err != nil {
		t.Fatalf("logout вернул ошибку: %v", err)
	}

	if len(repo.sessions) != 0 {
		t.Fatalf("сессия должна быть удалена")
	}
}
