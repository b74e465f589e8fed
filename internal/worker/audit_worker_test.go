package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

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

func TestConvertToTaskAudit(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	msg := entity.NewAuditMessage(entity.ActionUpdate, entity.EntityCategory, 1, 5, now)
	msg.OldValues = map[string]any{"name": "Work"}
	msg.NewValues = map[string]any{"name": "Job"}
	msg.Changes = map[string]any{"name": map[string]any{"old": "Work", "new": "Job"}}

	audit, err := convertToTaskAudit(msg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if audit.EventID != msg.ID {
		t.Errorf("Expected event id %s, got %s", msg.ID, audit.EventID)
	}
	if audit.EntityType != entity.EntityCategory || audit.EntityID != 5 {
		t.Errorf("Expected category 5, got %s %d", audit.EntityType, audit.EntityID)
	}
	if audit.OldValues == nil || *audit.OldValues != `{"name":"Work"}` {
		t.Errorf("Expected old values JSON, got %v", audit.OldValues)
	}
	if !audit.ChangesAt.Equal(now) {
		t.Errorf("Expected changed_at %v, got %v", now, audit.ChangesAt)
	}
}

func TestConvertToTaskAuditWithoutOldValues(t *testing.T) {
	msg := entity.NewAuditMessage(entity.ActionCreate, entity.EntityTask, 1, 1, time.Now())
	msg.NewValues = map[string]any{"title": "t"}

	audit, err := convertToTaskAudit(msg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if audit.OldValues != nil || audit.Changes != nil {
		t.Error("Expected nil old values and changes for Create")
	}
}

func TestHandle(t *testing.T) {
	var saved []*entity.TaskAudit
	repo := &MockTaskAuditRepository{
		CreateFunc: func(ctx context.Context, audit *entity.TaskAudit) error {
			saved = append(saved, audit)
			return nil
		},
	}
	w := NewAuditWorker("amqp://localhost", "task_audit_logs", repo)

	body, _ := json.Marshal(entity.NewAuditMessage(entity.ActionComplete, entity.EntityTask, 1, 9, time.Now()))
	if err := w.handle(context.Background(), body); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(saved) != 1 || saved[0].Action != entity.ActionComplete {
		t.Errorf("Expected one Complete audit, got %+v", saved)
	}

	if err := w.handle(context.Background(), []byte("not json")); !errors.Is(err, errMalformed) {
		t.Errorf("Expected errMalformed, got %v", err)
	}
	if err := w.handle(context.Background(), []byte(`{"user_id":1}`)); !errors.Is(err, errMalformed) {
		t.Errorf("Expected errMalformed for message without action, got %v", err)
	}
}

func TestHandleRepositoryError(t *testing.T) {
	dbErr := errors.New("connection refused")
	w := NewAuditWorker("amqp://localhost", "task_audit_logs", &MockTaskAuditRepository{
		CreateFunc: func(ctx context.Context, audit *entity.TaskAudit) error {
			return dbErr
		},
	})

	body, _ := json.Marshal(entity.NewAuditMessage(entity.ActionDelete, entity.EntityTag, 1, 2, time.Now()))
	err := w.handle(context.Background(), body)
	if !errors.Is(err, dbErr) || errors.Is(err, errMalformed) {
		t.Errorf("Expected repository error to be retryable, got %v", err)
	}
}
