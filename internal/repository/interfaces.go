package repository

import (
	"context"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
)

// ITransactor - интерфейс для TxManager
type ITransactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByID(ctx context.Context, id, ownerID int) (*entity.Task, error)
	GetForUpdate(ctx context.Context, id, ownerID int) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) (*entity.Task, error)
	SetTags(ctx context.Context, taskID int, tagIDs []int) error
	Delete(ctx context.Context, id, ownerID int) (bool, error)
	List(ctx context.Context, ownerID int, filter entity.TaskFilter) ([]entity.Task, error)
	Stats(ctx context.Context, ownerID int, filter entity.TaskFilter, now time.Time) (entity.TaskStats, error)
}

// ISubtaskRepository - интерфейс для SubtaskRepository
type ISubtaskRepository interface {
	Create(ctx context.Context, subtask *entity.Subtask) (*entity.Subtask, error)
	GetByID(ctx context.Context, taskID, id int) (*entity.Subtask, error)
	Update(ctx context.Context, subtask *entity.Subtask) (*entity.Subtask, error)
	Delete(ctx context.Context, taskID, id int) (bool, error)
	ListByTask(ctx context.Context, taskID int) ([]entity.Subtask, error)
}

// ITaskHistoryRepository - интерфейс для TaskHistoryRepository
type ITaskHistoryRepository interface {
	ExistsForTask(ctx context.Context, taskID int) (bool, error)
	GetByTaskID(ctx context.Context, taskID int) (*entity.TaskHistory, error)
	Create(ctx context.Context, history *entity.TaskHistory) (*entity.TaskHistory, error)
	Update(ctx context.Context, history *entity.TaskHistory) (*entity.TaskHistory, error)
	DeleteByTaskID(ctx context.Context, taskID int) error
}

// ICategoryRepository - интерфейс для CategoryRepository
type ICategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	GetByID(ctx context.Context, id int) (*entity.Category, error)
	ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error)
	Update(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Delete(ctx context.Context, id, ownerID int) (bool, error)
	List(ctx context.Context, ownerID int) ([]entity.Category, error)
	CountByOwner(ctx context.Context, ownerID int) (int, error)
}

// ITagRepository - интерфейс для TagRepository
type ITagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) (*entity.Tag, error)
	GetByID(ctx context.Context, id int) (*entity.Tag, error)
	ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error)
	Update(ctx context.Context, tag *entity.Tag) (*entity.Tag, error)
	Delete(ctx context.Context, id, ownerID int) (bool, error)
	List(ctx context.Context, ownerID int) ([]entity.Tag, error)
	CountByOwner(ctx context.Context, ownerID int) (int, error)
}

// ITaskListRepository - интерфейс для TaskListRepository
type ITaskListRepository interface {
	Create(ctx context.Context, list *entity.TaskList) (*entity.TaskList, error)
	GetByID(ctx context.Context, id int) (*entity.TaskList, error)
	ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error)
	Update(ctx context.Context, list *entity.TaskList) (*entity.TaskList, error)
	Delete(ctx context.Context, id, ownerID int) (bool, error)
	List(ctx context.Context, ownerID int) ([]entity.TaskList, error)
	CountByOwner(ctx context.Context, ownerID int) (int, error)
}

// IUserRepository - интерфейс для UserRepository
type IUserRepository interface {
	CreateWithAuth(ctx context.Context, name, email, passwordHash string) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateName(ctx context.Context, id int, name string) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) (bool, error)
}

// IRefreshTokenRepository - интерфейс для RefreshTokenRepository
type IRefreshTokenRepository interface {
	Save(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAll(ctx context.Context, userID int) error
	CleanupExpired(ctx context.Context) error
}

// ITaskAuditRepository - интерфейс для TaskAuditRepository
type ITaskAuditRepository interface {
	Create(ctx context.Context, audit *entity.TaskAudit) error
	ListByEntity(ctx context.Context, entityType string, entityID int) ([]entity.TaskAudit, error)
}
