package entity

import "time"

const MaxTagNameLength = 30

type Tag struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) Validate() error {
	if err := validateName(t.Name, MaxTagNameLength); err != nil {
		return err
	}
	return ValidateColor(t.Color)
}

type TagWithStats struct {
	Tag
	TaskStats
}

type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (r *CreateTagRequest) ToTag(ownerID int) *Tag {
	return &Tag{
		OwnerID: ownerID,
		Name:    r.Name,
		Color:   colorOrDefault(r.Color, DefaultTagColor),
	}
}

type UpdateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}
