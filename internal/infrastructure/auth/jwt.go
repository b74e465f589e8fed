package auth

import (
	"fmt"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTManager struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTManager(secretKey string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *JWTManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// GenerateAccessToken генерирует короткоживущий access token
func (m *JWTManager) GenerateAccessToken(userID int, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(m.accessTTL).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken генерирует refresh token. jti делает токен уникальным
// даже при выдаче двух токенов в одну секунду.
func (m *JWTManager) GenerateRefreshToken(userID int, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(m.refreshTTL).Unix(),
		"iat":     time.Now().Unix(),
		"jti":     uuid.NewString(),
		"type":    "refresh",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken проверяет access token
func (m *JWTManager) ValidateAccessToken(tokenString string) (*entity.JWTClaims, error) {
	return m.validate(tokenString, "access")
}

// ValidateRefreshToken проверяет refresh token
func (m *JWTManager) ValidateRefreshToken(tokenString string) (*entity.JWTClaims, error) {
	return m.validate(tokenString, "refresh")
}

func (m *JWTManager) validate(tokenString, expectedType string) (*entity.JWTClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, entity.ErrInvalidToken
	}

	// Проверяем тип токена
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != expectedType {
		return nil, fmt.Errorf("%w: invalid token type", entity.ErrInvalidToken)
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid user_id in token", entity.ErrInvalidToken)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid email in token", entity.ErrInvalidToken)
	}

	return &entity.JWTClaims{
		UserID: int(userID),
		Email:  email,
	}, nil
}
