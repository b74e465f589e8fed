package entity

import (
	"errors"
	"fmt"
)

// Базовые классы ошибок. Конкретные ошибки ниже оборачивают их через %w,
// поэтому errors.Is работает и по конкретной ошибке, и по классу.
var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrForeignOwnership   = errors.New("foreign ownership")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
)

var (
	ErrNoFieldsToUpdate = fmt.Errorf("no fields to update: %w", ErrInvalidInput)

	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
	ErrSubtaskNotFound  = fmt.Errorf("subtask %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrTagNotFound      = fmt.Errorf("tag %w", ErrNotFound)
	ErrListNotFound     = fmt.Errorf("task list %w", ErrNotFound)
	ErrHistoryNotFound  = fmt.Errorf("task history %w", ErrNotFound)

	ErrIncompleteSubtasks = fmt.Errorf("all subtasks must be completed before the task: %w", ErrPreconditionFailed)

	ErrDuplicateCategoryName = fmt.Errorf("category with this name already exists: %w", ErrDuplicateName)
	ErrDuplicateTagName      = fmt.Errorf("tag with this name already exists: %w", ErrDuplicateName)
	ErrDuplicateListName     = fmt.Errorf("task list with this name already exists: %w", ErrDuplicateName)

	ErrForeignList     = fmt.Errorf("task list does not belong to the user: %w", ErrForeignOwnership)
	ErrForeignCategory = fmt.Errorf("category does not belong to the user: %w", ErrForeignOwnership)
	ErrForeignTag      = fmt.Errorf("tag does not belong to the user: %w", ErrForeignOwnership)

	ErrEmptyTitle      = fmt.Errorf("title is required: %w", ErrInvalidInput)
	ErrTitleTooLong    = fmt.Errorf("title exceeds 200 characters: %w", ErrInvalidInput)
	ErrEmptyName       = fmt.Errorf("name is required: %w", ErrInvalidInput)
	ErrNameTooLong     = fmt.Errorf("name is too long: %w", ErrInvalidInput)
	ErrInvalidColor    = fmt.Errorf("color must be in #RRGGBB format: %w", ErrInvalidInput)
	ErrInvalidPriority = fmt.Errorf("priority must be low, medium or high: %w", ErrInvalidInput)
	ErrInvalidOrder    = fmt.Errorf("order must be non-negative: %w", ErrInvalidInput)
	ErrInvalidDuration = fmt.Errorf("duration must be non-negative: %w", ErrInvalidInput)

	ErrEmailTaken         = fmt.Errorf("user with this email already exists: %w", ErrInvalidInput)
	ErrInvalidUserData    = fmt.Errorf("invalid user data: %w", ErrInvalidInput)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrUserInactive       = fmt.Errorf("user is not active: %w", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid token: %w", ErrUnauthorized)
)
