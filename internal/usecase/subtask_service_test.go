package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
)

func newSubtaskTestService(subtasks map[int]*entity.Subtask) *SubtaskService {
	taskRepo := &MockTaskRepository{
		GetByIDFunc: func(ctx context.Context, id, ownerID int) (*entity.Task, error) {
			if id != 1 || ownerID != 1 {
				return nil, nil
			}
			return testTask(), nil
		},
	}

	nextID := len(subtasks) + 1
	subtaskRepo := &MockSubtaskRepository{
		CreateFunc: func(ctx context.Context, subtask *entity.Subtask) (*entity.Subtask, error) {
			created := *subtask
			created.ID = nextID
			nextID++
			subtasks[created.ID] = &created
			return &created, nil
		},
		GetByIDFunc: func(ctx context.Context, taskID, id int) (*entity.Subtask, error) {
			subtask, ok := subtasks[id]
			if !ok || subtask.TaskID != taskID {
				return nil, nil
			}
			copied := *subtask
			return &copied, nil
		},
		UpdateFunc: func(ctx context.Context, subtask *entity.Subtask) (*entity.Subtask, error) {
			stored := *subtask
			subtasks[stored.ID] = &stored
			return &stored, nil
		},
	}

	return NewSubtaskService(taskRepo, subtaskRepo, nil, fixedClock(testNow))
}

func TestCreateSubtask(t *testing.T) {
	subtasks := map[int]*entity.Subtask{}
	service := newSubtaskTestService(subtasks)

	detail, err := service.CreateSubtask(context.Background(), 1, 1, &entity.CreateSubtaskRequest{Title: "step", Completed: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if detail.Priority != entity.PriorityMedium {
		t.Errorf("Expected default priority medium, got %s", detail.Priority)
	}
	if detail.CompletedAt == nil || !detail.CompletedAt.Equal(testNow) {
		t.Errorf("Expected completed_at %v, got %v", testNow, detail.CompletedAt)
	}
	if len(subtasks) != 1 {
		t.Errorf("Expected 1 stored subtask, got %d", len(subtasks))
	}
}

func TestCreateSubtaskErrors(t *testing.T) {
	service := newSubtaskTestService(map[int]*entity.Subtask{})

	_, err := service.CreateSubtask(context.Background(), 2, 1, &entity.CreateSubtaskRequest{Title: "step"})
	if !errors.Is(err, entity.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound for other owner, got %v", err)
	}

	_, err = service.CreateSubtask(context.Background(), 1, 1, &entity.CreateSubtaskRequest{Title: "step", Order: -1})
	if err != entity.ErrInvalidOrder {
		t.Errorf("Expected ErrInvalidOrder, got %v", err)
	}
}

func TestUpdateSubtaskCompletion(t *testing.T) {
	subtasks := map[int]*entity.Subtask{
		1: {ID: 1, TaskID: 1, Title: "step", Priority: entity.PriorityLow},
	}
	service := newSubtaskTestService(subtasks)
	ctx := context.Background()
	completed := true

	detail, err := service.UpdateSubtask(ctx, 1, 1, 1, &entity.UpdateSubtaskRequest{Completed: &completed})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !detail.Completed || detail.CompletedAt == nil {
		t.Error("Expected subtask to be completed with completed_at set")
	}

	notCompleted := false
	detail, err = service.UpdateSubtask(ctx, 1, 1, 1, &entity.UpdateSubtaskRequest{Completed: &notCompleted})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if detail.Completed || detail.CompletedAt != nil {
		t.Error("Expected completed_at to be cleared")
	}

	if _, err := service.UpdateSubtask(ctx, 1, 1, 1, &entity.UpdateSubtaskRequest{}); err != entity.ErrNoFieldsToUpdate {
		t.Errorf("Expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestGetSubtaskOfOtherTask(t *testing.T) {
	subtasks := map[int]*entity.Subtask{
		5: {ID: 5, TaskID: 7, Title: "elsewhere", Priority: entity.PriorityLow},
	}
	service := newSubtaskTestService(subtasks)

	_, err := service.GetSubtask(context.Background(), 1, 1, 5)
	if err != entity.ErrSubtaskNotFound {
		t.Errorf("Expected ErrSubtaskNotFound, got %v", err)
	}
}

func TestUpdateSubtaskClearsDueDate(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	subtasks := map[int]*entity.Subtask{
		1: {ID: 1, TaskID: 1, Title: "step", Priority: entity.PriorityLow, DueDate: &yesterday,
			EstimatedDuration: entity.NewDuration(time.Hour)},
	}
	service := newSubtaskTestService(subtasks)

	var req entity.UpdateSubtaskRequest
	if err := json.Unmarshal([]byte(`{"due_date": null, "estimated_duration": null}`), &req); err != nil {
		t.Fatalf("Failed to decode request: %v", err)
	}

	detail, err := service.UpdateSubtask(context.Background(), 1, 1, 1, &req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if detail.DueDate != nil || detail.IsOverdue {
		t.Errorf("Expected due date cleared and subtask not overdue, got due=%v overdue=%v", detail.DueDate, detail.IsOverdue)
	}
	if subtasks[1].EstimatedDuration != nil {
		t.Errorf("Expected estimate cleared, got %v", subtasks[1].EstimatedDuration)
	}
}
