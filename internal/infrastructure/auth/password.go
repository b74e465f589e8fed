package auth

import (
	"errors"
	"fmt"

	"github.com/St1cky1/taskmanager/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

type PasswordManager struct {
	cost int
}

func NewPasswordManager() *PasswordManager {
	return NewPasswordManagerWithCost(bcrypt.DefaultCost)
}

// NewPasswordManagerWithCost - для тестов удобно bcrypt.MinCost
func NewPasswordManagerWithCost(cost int) *PasswordManager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{cost: cost}
}

// HashPassword хеширует пароль
func (m *PasswordManager) HashPassword(password string) (string, error) {
	if err := entity.ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("failed to hash password: %w: %w", entity.ErrInvalidUserData, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword проверяет пароль против хеша
func (m *PasswordManager) VerifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
