package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/infrastructure/auth"
	"github.com/St1cky1/taskmanager/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// authFixture - пользователи и refresh токены в памяти
type authFixture struct {
	users   map[string]*entity.User
	tokens  map[string]*repository.RefreshToken
	touched int
}

func newAuthFixture() (*authFixture, *AuthService) {
	f := &authFixture{
		users:  map[string]*entity.User{},
		tokens: map[string]*repository.RefreshToken{},
	}

	userRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return f.users[email], nil
		},
		CreateWithAuthFunc: func(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
			user := &entity.User{
				ID:           len(f.users) + 1,
				Name:         name,
				Email:        &email,
				PasswordHash: passwordHash,
				IsActive:     true,
			}
			f.users[email] = user
			return user, nil
		},
		TouchLastLoginFunc: func(ctx context.Context, id int) error {
			f.touched++
			return nil
		},
	}

	tokenRepo := &MockRefreshTokenRepository{
		SaveFunc: func(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
			f.tokens[tokenHash] = &repository.RefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
			return nil
		},
		GetByHashFunc: func(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
			token, ok := f.tokens[tokenHash]
			if !ok || token.Revoked {
				return nil, nil
			}
			return token, nil
		},
		RevokeFunc: func(ctx context.Context, tokenHash string) error {
			if token, ok := f.tokens[tokenHash]; ok {
				token.Revoked = true
			}
			return nil
		},
		RevokeAllFunc: func(ctx context.Context, userID int) error {
			for _, token := range f.tokens {
				if token.UserID == userID {
					token.Revoked = true
				}
			}
			return nil
		},
	}

	service := NewAuthService(
		userRepo,
		tokenRepo,
		auth.NewPasswordManagerWithCost(bcrypt.MinCost),
		auth.NewJWTManager("test-secret", time.Minute, time.Hour),
		fixedClock(testNow),
	)
	return f, service
}

func TestRegisterAndLogin(t *testing.T) {
	f, service := newAuthFixture()
	ctx := context.Background()

	resp, err := service.Register(ctx, &entity.RegisterRequest{Name: "Ann", Email: " Ann@Example.com ", Password: "password1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("Expected tokens in register response")
	}
	if _, ok := f.users["ann@example.com"]; !ok {
		t.Error("Expected email to be normalized to lower case")
	}

	_, err = service.Register(ctx, &entity.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password1"})
	if err != entity.ErrEmailTaken {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}

	if _, err := service.Login(ctx, &entity.LoginRequest{Email: "ANN@example.com", Password: "password1"}); err != nil {
		t.Errorf("Expected login to succeed, got %v", err)
	}

	_, err = service.Login(ctx, &entity.LoginRequest{Email: "ann@example.com", Password: "wrong-password"})
	if !errors.Is(err, entity.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for wrong password, got %v", err)
	}

	if f.touched != 2 {
		t.Errorf("Expected last_login updated twice, got %d", f.touched)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	f, service := newAuthFixture()
	ctx := context.Background()

	if _, err := service.Register(ctx, &entity.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.users["bob@example.com"].IsActive = false

	_, err := service.Login(ctx, &entity.LoginRequest{Email: "bob@example.com", Password: "password1"})
	if err != entity.ErrUserInactive {
		t.Errorf("Expected ErrUserInactive, got %v", err)
	}
}

func TestRegisterInvalidData(t *testing.T) {
	tests := []struct {
		name string
		req  entity.RegisterRequest
	}{
		{"short password", entity.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "short"}},
		{"password over 72 bytes", entity.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: strings.Repeat("p", 80)}},
		{"missing email", entity.RegisterRequest{Name: "Ann", Password: "password1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, service := newAuthFixture()

			req := tt.req
			_, err := service.Register(context.Background(), &req)
			if !errors.Is(err, entity.ErrInvalidUserData) || !errors.Is(err, entity.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidUserData, got %v", err)
			}
			if len(f.users) != 0 {
				t.Errorf("Expected no user to be created, got %d", len(f.users))
			}
		})
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	_, service := newAuthFixture()
	ctx := context.Background()

	login, err := service.Register(ctx, &entity.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	refreshed, err := service.RefreshToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("Expected a new refresh token")
	}

	// старый токен отозван
	if _, err := service.RefreshToken(ctx, login.RefreshToken); err != entity.ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for rotated token, got %v", err)
	}

	userID, err := service.Authenticate(refreshed.AccessToken)
	if err != nil || userID != 1 {
		t.Errorf("Expected user 1 from access token, got %d (%v)", userID, err)
	}

	if err := service.Logout(ctx, userID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := service.RefreshToken(ctx, refreshed.RefreshToken); err != entity.ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	_, service := newAuthFixture()

	login, err := service.Register(context.Background(), &entity.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := service.Authenticate(login.RefreshToken); !errors.Is(err, entity.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	email := "ann@example.com"
	service := NewUserService(
		&MockUserRepository{
			GetByIDFunc: func(ctx context.Context, id int) (*entity.User, error) {
				if id != 1 {
					return nil, nil
				}
				return &entity.User{ID: 1, Name: "Ann", Email: &email, IsActive: true}, nil
			},
		},
		&MockTaskRepository{
			StatsFunc: func(ctx context.Context, ownerID int, filter entity.TaskFilter, now time.Time) (entity.TaskStats, error) {
				return entity.NewTaskStats(5, 2, 1, 0), nil
			},
		},
		&MockCategoryRepository{CountByOwnerFunc: func(ctx context.Context, ownerID int) (int, error) { return 3, nil }},
		&MockTagRepository{CountByOwnerFunc: func(ctx context.Context, ownerID int) (int, error) { return 4, nil }},
		&MockTaskListRepository{CountByOwnerFunc: func(ctx context.Context, ownerID int) (int, error) { return 1, nil }},
		fixedClock(testNow),
	)
	ctx := context.Background()

	profile, err := service.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile.TasksCount != 5 || profile.CompletedTasksCount != 2 || profile.CategoriesCount != 3 ||
		profile.TagsCount != 4 || profile.ListsCount != 1 {
		t.Errorf("Unexpected profile counters: %+v", profile)
	}

	if _, err := service.GetProfile(ctx, 2); err != entity.ErrUserNotFound {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}

	if _, err := service.UpdateUser(ctx, 1, &entity.UpdateUserRequest{Name: "  "}); err != entity.ErrNoFieldsToUpdate {
		t.Errorf("Expected ErrNoFieldsToUpdate, got %v", err)
	}

	if err := service.DeleteUser(ctx, 1); err != entity.ErrUserNotFound {
		t.Errorf("Expected ErrUserNotFound when repository deletes nothing, got %v", err)
	}
}
