package entity

import "regexp"

const (
	DefaultCategoryColor = "#007bff"
	DefaultTagColor      = "#6c757d"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColor проверяет формат #RRGGBB
func ValidateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}

// colorOrDefault подставляет цвет по умолчанию для пустого значения
func colorOrDefault(color, def string) string {
	if color == "" {
		return def
	}
	return color
}
