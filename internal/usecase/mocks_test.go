package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

// MockTransactor - выполняет fn без транзакции
type MockTransactor struct {
	WithinTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ repository.ITransactor = (*MockTransactor)(nil)

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithinTxFunc != nil {
		return m.WithinTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// MockTaskRepository - мок для ITaskRepository
type MockTaskRepository struct {
	CreateFunc       func(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByIDFunc      func(ctx context.Context, id, ownerID int) (*entity.Task, error)
	GetForUpdateFunc func(ctx context.Context, id, ownerID int) (*entity.Task, error)
	UpdateFunc       func(ctx context.Context, task *entity.Task) (*entity.Task, error)
	SetTagsFunc      func(ctx context.Context, taskID int, tagIDs []int) error
	DeleteFunc       func(ctx context.Context, id, ownerID int) (bool, error)
	ListFunc         func(ctx context.Context, ownerID int, filter entity.TaskFilter) ([]entity.Task, error)
	StatsFunc        func(ctx context.Context, ownerID int, filter entity.TaskFilter, now time.Time) (entity.TaskStats, error)
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id, ownerID int) (*entity.Task, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, ownerID)
	}
	return nil, nil
}

// GetForUpdate по умолчанию ведёт себя как GetByID
func (m *MockTaskRepository) GetForUpdate(ctx context.Context, id, ownerID int) (*entity.Task, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, id, ownerID)
	}
	return m.GetByID(ctx, id, ownerID)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return task, nil
}

func (m *MockTaskRepository) SetTags(ctx context.Context, taskID int, tagIDs []int) error {
	if m.SetTagsFunc != nil {
		return m.SetTagsFunc(ctx, taskID, tagIDs)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	return true, nil
}

func (m *MockTaskRepository) List(ctx context.Context, ownerID int, filter entity.TaskFilter) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter)
	}
	return nil, nil
}

func (m *MockTaskRepository) Stats(ctx context.Context, ownerID int, filter entity.TaskFilter, now time.Time) (entity.TaskStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, ownerID, filter, now)
	}
	return entity.TaskStats{}, nil
}

// MockSubtaskRepository - мок для ISubtaskRepository
type MockSubtaskRepository struct {
	CreateFunc     func(ctx context.Context, subtask *entity.Subtask) (*entity.Subtask, error)
	GetByIDFunc    func(ctx context.Context, taskID, id int) (*entity.Subtask, error)
	UpdateFunc     func(ctx context.Context, subtask *entity.Subtask) (*entity.Subtask, error)
	DeleteFunc     func(ctx context.Context, taskID, id int) (bool, error)
	ListByTaskFunc func(ctx context.Context, taskID int) ([]entity.Subtask, error)
}

var _ repository.ISubtaskRepository = (*MockSubtaskRepository)(nil)

func (m *MockSubtaskRepository) Create(ctx context.Context, subtask *entity.Subtask) (*entity.Subtask, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, subtask)
	}
	return subtask, nil
}

func (m *MockSubtaskRepository) GetByID(ctx context.Context, taskID, id int) (*entity.Subtask, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, taskID, id)
	}
	return nil, nil
}

func (m *MockSubtaskRepository) Update(ctx context.Context, subtask *entity.Subtask) (*entity.Subtask, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, subtask)
	}
	return subtask, nil
}

func (m *MockSubtaskRepository) Delete(ctx context.Context, taskID, id int) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, taskID, id)
	}
	return true, nil
}

func (m *MockSubtaskRepository) ListByTask(ctx context.Context, taskID int) ([]entity.Subtask, error) {
	if m.ListByTaskFunc != nil {
		return m.ListByTaskFunc(ctx, taskID)
	}
	return nil, nil
}

// MockTaskHistoryRepository - мок для ITaskHistoryRepository
type MockTaskHistoryRepository struct {
	ExistsForTaskFunc  func(ctx context.Context, taskID int) (bool, error)
	GetByTaskIDFunc    func(ctx context.Context, taskID int) (*entity.TaskHistory, error)
	CreateFunc         func(ctx context.Context, history *entity.TaskHistory) (*entity.TaskHistory, error)
	UpdateFunc         func(ctx context.Context, history *entity.TaskHistory) (*entity.TaskHistory, error)
	DeleteByTaskIDFunc func(ctx context.Context, taskID int) error
}

var _ repository.ITaskHistoryRepository = (*MockTaskHistoryRepository)(nil)

func (m *MockTaskHistoryRepository) ExistsForTask(ctx context.Context, taskID int) (bool, error) {
	if m.ExistsForTaskFunc != nil {
		return m.ExistsForTaskFunc(ctx, taskID)
	}
	return false, nil
}

func (m *MockTaskHistoryRepository) GetByTaskID(ctx context.Context, taskID int) (*entity.TaskHistory, error) {
	if m.GetByTaskIDFunc != nil {
		return m.GetByTaskIDFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockTaskHistoryRepository) Create(ctx context.Context, history *entity.TaskHistory) (*entity.TaskHistory, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, history)
	}
	return history, nil
}

func (m *MockTaskHistoryRepository) Update(ctx context.Context, history *entity.TaskHistory) (*entity.TaskHistory, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, history)
	}
	return history, nil
}

func (m *MockTaskHistoryRepository) DeleteByTaskID(ctx context.Context, taskID int) error {
	if m.DeleteByTaskIDFunc != nil {
		return m.DeleteByTaskIDFunc(ctx, taskID)
	}
	return nil
}

// MockCategoryRepository - мок для ICategoryRepository
type MockCategoryRepository struct {
	CreateFunc       func(ctx context.Context, category *entity.Category) (*entity.Category, error)
	GetByIDFunc      func(ctx context.Context, id int) (*entity.Category, error)
	ExistsByNameFunc func(ctx context.Context, ownerID int, name string, excludeID int) (bool, error)
	UpdateFunc       func(ctx context.Context, category *entity.Category) (*entity.Category, error)
	DeleteFunc       func(ctx context.Context, id, ownerID int) (bool, error)
	ListFunc         func(ctx context.Context, ownerID int) ([]entity.Category, error)
	CountByOwnerFunc func(ctx context.Context, ownerID int) (int, error)
}

var _ repository.ICategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return category, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int) (*entity.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, ownerID, name, excludeID)
	}
	return false, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	return category, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	return true, nil
}

func (m *MockCategoryRepository) List(ctx context.Context, ownerID int) ([]entity.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockCategoryRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	if m.CountByOwnerFunc != nil {
		return m.CountByOwnerFunc(ctx, ownerID)
	}
	return 0, nil
}

// MockTagRepository - мок для ITagRepository
type MockTagRepository struct {
	CreateFunc       func(ctx context.Context, tag *entity.Tag) (*entity.Tag, error)
	GetByIDFunc      func(ctx context.Context, id int) (*entity.Tag, error)
	ExistsByNameFunc func(ctx context.Context, ownerID int, name string, excludeID int) (bool, error)
	UpdateFunc       func(ctx context.Context, tag *entity.Tag) (*entity.Tag, error)
	DeleteFunc       func(ctx context.Context, id, ownerID int) (bool, error)
	ListFunc         func(ctx context.Context, ownerID int) ([]entity.Tag, error)
	CountByOwnerFunc func(ctx context.Context, ownerID int) (int, error)
}

var _ repository.ITagRepository = (*MockTagRepository)(nil)

func (m *MockTagRepository) Create(ctx context.Context, tag *entity.Tag) (*entity.Tag, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tag)
	}
	return tag, nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id int) (*entity.Tag, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTagRepository) ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, ownerID, name, excludeID)
	}
	return false, nil
}

func (m *MockTagRepository) Update(ctx context.Context, tag *entity.Tag) (*entity.Tag, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tag)
	}
	return tag, nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	return true, nil
}

func (m *MockTagRepository) List(ctx context.Context, ownerID int) ([]entity.Tag, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockTagRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	if m.CountByOwnerFunc != nil {
		return m.CountByOwnerFunc(ctx, ownerID)
	}
	return 0, nil
}

// MockTaskListRepository - мок для ITaskListRepository
type MockTaskListRepository struct {
	CreateFunc       func(ctx context.Context, list *entity.TaskList) (*entity.TaskList, error)
	GetByIDFunc      func(ctx context.Context, id int) (*entity.TaskList, error)
	ExistsByNameFunc func(ctx context.Context, ownerID int, name string, excludeID int) (bool, error)
	UpdateFunc       func(ctx context.Context, list *entity.TaskList) (*entity.TaskList, error)
	DeleteFunc       func(ctx context.Context, id, ownerID int) (bool, error)
	ListFunc         func(ctx context.Context, ownerID int) ([]entity.TaskList, error)
	CountByOwnerFunc func(ctx context.Context, ownerID int) (int, error)
}

var _ repository.ITaskListRepository = (*MockTaskListRepository)(nil)

func (m *MockTaskListRepository) Create(ctx context.Context, list *entity.TaskList) (*entity.TaskList, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, list)
	}
	return list, nil
}

func (m *MockTaskListRepository) GetByID(ctx context.Context, id int) (*entity.TaskList, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskListRepository) ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, ownerID, name, excludeID)
	}
	return false, nil
}

func (m *MockTaskListRepository) Update(ctx context.Context, list *entity.TaskList) (*entity.TaskList, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, list)
	}
	return list, nil
}

func (m *MockTaskListRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, ownerID)
	}
	return true, nil
}

func (m *MockTaskListRepository) List(ctx context.Context, ownerID int) ([]entity.TaskList, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockTaskListRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	if m.CountByOwnerFunc != nil {
		return m.CountByOwnerFunc(ctx, ownerID)
	}
	return 0, nil
}

// MockUserRepository - мок для IUserRepository
type MockUserRepository struct {
	CreateWithAuthFunc func(ctx context.Context, name, email, passwordHash string) (*entity.User, error)
	GetByIDFunc        func(ctx context.Context, id int) (*entity.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*entity.User, error)
	UpdateNameFunc     func(ctx context.Context, id int, name string) (*entity.User, error)
	TouchLastLoginFunc func(ctx context.Context, id int) error
	DeleteFunc         func(ctx context.Context, id int) (bool, error)
}

var _ repository.IUserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) CreateWithAuth(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
	if m.CreateWithAuthFunc != nil {
		return m.CreateWithAuthFunc(ctx, name, email, passwordHash)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id int, name string) (*entity.User, error) {
	if m.UpdateNameFunc != nil {
		return m.UpdateNameFunc(ctx, id, name)
	}
	return nil, nil
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int) error {
	if m.TouchLastLoginFunc != nil {
		return m.TouchLastLoginFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

// MockRefreshTokenRepository - мок для IRefreshTokenRepository
type MockRefreshTokenRepository struct {
	SaveFunc           func(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	GetByHashFunc      func(ctx context.Context, tokenHash string) (*repository.RefreshToken, error)
	RevokeFunc         func(ctx context.Context, tokenHash string) error
	RevokeAllFunc      func(ctx context.Context, userID int) error
	CleanupExpiredFunc func(ctx context.Context) error
}

var _ repository.IRefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

func (m *MockRefreshTokenRepository) Save(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, tokenHash, expiresAt)
	}
	return nil
}

func (m *MockRefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
	if m.GetByHashFunc != nil {
		return m.GetByHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenHash)
	}
	return nil
}

func (m *MockRefreshTokenRepository) RevokeAll(ctx context.Context, userID int) error {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, userID)
	}
	return nil
}

func (m *MockRefreshTokenRepository) CleanupExpired(ctx context.Context) error {
	if m.CleanupExpiredFunc != nil {
		return m.CleanupExpiredFunc(ctx)
	}
	return nil
}

// MockRabbitMQPublisher - мок для RabbitMQPublisher, складывает сообщения в канал
type MockRabbitMQPublisher struct {
	mu       sync.Mutex
	Messages chan *entity.AuditMessage
}

func NewMockRabbitMQPublisher() *MockRabbitMQPublisher {
	return &MockRabbitMQPublisher{Messages: make(chan *entity.AuditMessage, 16)}
}

func (m *MockRabbitMQPublisher) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages <- message
	return nil
}

// fixedClock - часы для тестов
func fixedClock(now time.Time) Clock {
	return func() time.Time {
		return now
	}
}

// MockTaskAuditRepository - мок для ITaskAuditRepository
type MockTaskAuditRepository struct {
	CreateFunc       func(ctx context.Context, audit *entity.TaskAudit) error
	ListByEntityFunc func(ctx context.Context, entityType string, entityID int) ([]entity.TaskAudit, error)
}

var _ repository.ITaskAuditRepository = (*MockTaskAuditRepository)(nil)

func (m *MockTaskAuditRepository) Create(ctx context.Context, audit *entity.TaskAudit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, audit)
	}
	return nil
}

func (m *MockTaskAuditRepository) ListByEntity(ctx context.Context, entityType string, entityID int) ([]entity.TaskAudit, error) {
	if m.ListByEntityFunc != nil {
		return m.ListByEntityFunc(ctx, entityType, entityID)
	}
	return nil, nil
}
