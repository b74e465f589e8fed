package entity

import (
	"time"
	"unicode/utf8"
)

const MaxCategoryNameLength = 50

type Category struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) Validate() error {
	if err := validateName(c.Name, MaxCategoryNameLength); err != nil {
		return err
	}
	return ValidateColor(c.Color)
}

type CategoryWithStats struct {
	Category
	TaskStats
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (r *CreateCategoryRequest) ToCategory(ownerID int) *Category {
	return &Category{
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
		Color:       colorOrDefault(r.Color, DefaultCategoryColor),
	}
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func validateName(name string, maxLen int) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxLen {
		return ErrNameTooLong
	}
	return nil
}
