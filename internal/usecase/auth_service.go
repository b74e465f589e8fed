package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/infrastructure/auth"
	"github.com/St1cky1/taskmanager/internal/repository"
)

type AuthService struct {
	userRepo         repository.IUserRepository
	refreshTokenRepo repository.IRefreshTokenRepository
	passwordManager  *auth.PasswordManager
	jwtManager       *auth.JWTManager
	clock            Clock
}

func NewAuthService(
	userRepo repository.IUserRepository,
	refreshTokenRepo repository.IRefreshTokenRepository,
	passwordManager *auth.PasswordManager,
	jwtManager *auth.JWTManager,
	clock Clock,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		passwordManager:  passwordManager,
		jwtManager:       jwtManager,
		clock:            clock,
	}
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Проверяем, что пользователь с таким email не существует
	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, entity.ErrEmailTaken
	}

	// Хешируем пароль
	passwordHash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// Создаем пользователя
	user, err := s.userRepo.CreateWithAuth(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Login логинит пользователя
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	// Ищем пользователя по email
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrInvalidCredentials
	}

	// Проверяем активность пользователя
	if !user.IsActive {
		return nil, entity.ErrUserInactive
	}

	// Проверяем пароль
	if !s.passwordManager.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken выдает новую пару токенов, старый refresh token отзывается
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenStr string) (*entity.RefreshTokenResponse, error) {
	// Проверяем refresh token
	claims, err := s.jwtManager.ValidateRefreshToken(refreshTokenStr)
	if err != nil {
		return nil, err
	}

	// Проверяем, есть ли этот токен в БД
	refreshTokenHash := hashToken(refreshTokenStr)
	storedToken, err := s.refreshTokenRepo.GetByHash(ctx, refreshTokenHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if storedToken == nil {
		return nil, entity.ErrInvalidToken
	}

	// Генерируем новый access token
	newAccessToken, err := s.jwtManager.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return nil, err
	}

	// Генерируем новый refresh token
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(claims.UserID, claims.Email)
	if err != nil {
		return nil, err
	}

	// Откатываем старый refresh token
	if err := s.refreshTokenRepo.Revoke(ctx, refreshTokenHash); err != nil {
		return nil, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	// Сохраняем новый refresh token
	expiresAt := s.clock().Add(s.jwtManager.RefreshTTL())
	if err := s.refreshTokenRepo.Save(ctx, claims.UserID, hashToken(newRefreshToken), expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save new refresh token: %w", err)
	}

	return &entity.RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout откатывает все refresh токены пользователя
func (s *AuthService) Logout(ctx context.Context, userID int) error {
	if err := s.refreshTokenRepo.RevokeAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// Authenticate проверяет access token и возвращает id пользователя
func (s *AuthService) Authenticate(accessToken string) (int, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*entity.LoginResponse, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, email)
	if err != nil {
		return nil, err
	}

	// Сохраняем хеш refresh token в БД
	expiresAt := s.clock().Add(s.jwtManager.RefreshTTL())
	if err := s.refreshTokenRepo.Save(ctx, user.ID, hashToken(refreshToken), expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	// Обновляем last_login
	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to update last_login: %w", err)
	}

	return &entity.LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// hashToken генерирует хеш токена для хранения в БД
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
