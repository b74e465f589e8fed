package entity

import (
	"fmt"
	"time"
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        *string    `json:"email,omitempty"`
	PasswordHash string     `json:"-"` // Никогда не отправляем пароль
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Профиль со счётчиками по данным пользователя
type UserProfile struct {
	User
	TasksCount          int `json:"tasks_count"`
	CompletedTasksCount int `json:"completed_tasks_count"`
	CategoriesCount     int `json:"categories_count"`
	TagsCount           int `json:"tags_count"`
	ListsCount          int `json:"lists_count"`
}

type UpdateUserRequest struct {
	Name string `json:"name"`
}

// Регистрация
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Границы длины пароля в байтах. Больше 72 байт bcrypt не принимает.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

func (r *RegisterRequest) Validate() error {
	if r.Name == "" || r.Email == "" {
		return ErrInvalidUserData
	}
	return ValidatePassword(r.Password)
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password is shorter than %d bytes: %w", MinPasswordLength, ErrInvalidUserData)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password is longer than %d bytes: %w", MaxPasswordLength, ErrInvalidUserData)
	}
	return nil
}

// Логин
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh Token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// JWT Claims
type JWTClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
}
