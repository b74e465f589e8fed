package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

// SubtaskService - подзадачи доступны только через задачу владельца
type SubtaskService struct {
	taskRepo    repository.ITaskRepository
	subtaskRepo repository.ISubtaskRepository
	audit       auditor
	clock       Clock
}

func NewSubtaskService(
	taskRepo repository.ITaskRepository,
	subtaskRepo repository.ISubtaskRepository,
	rabbitMQ RabbitMQPublisher,
	clock Clock,
) *SubtaskService {
	return &SubtaskService{
		taskRepo:    taskRepo,
		subtaskRepo: subtaskRepo,
		audit:       auditor{publisher: rabbitMQ, clock: clock},
		clock:       clock,
	}
}

func (s *SubtaskService) ListSubtasks(ctx context.Context, userID, taskID int) ([]entity.SubtaskDetail, error) {
	if err := s.checkTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	subtasks, err := s.subtaskRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	out := make([]entity.SubtaskDetail, 0, len(subtasks))
	for i := range subtasks {
		out = append(out, entity.NewSubtaskDetail(&subtasks[i], now))
	}
	return out, nil
}

func (s *SubtaskService) CreateSubtask(ctx context.Context, userID, taskID int, req *entity.CreateSubtaskRequest) (*entity.SubtaskDetail, error) {
	if err := s.checkTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	subtask := &entity.Subtask{
		TaskID:            taskID,
		Title:             req.Title,
		Description:       req.Description,
		Order:             req.Order,
		Priority:          req.Priority,
		DueDate:           req.DueDate,
		Reminder:          req.Reminder,
		EstimatedDuration: req.EstimatedDuration,
		Notes:             req.Notes,
	}
	if subtask.Priority == "" {
		subtask.Priority = entity.PriorityMedium
	}
	now := s.clock()
	subtask.SetCompleted(req.Completed, now)

	if err := subtask.Validate(); err != nil {
		return nil, err
	}

	created, err := s.subtaskRepo.Create(ctx, subtask)
	if err != nil {
		return nil, err
	}

	s.audit.send(entity.ActionCreate, entity.EntitySubtask, userID, created.ID, nil, created)

	detail := entity.NewSubtaskDetail(created, now)
	return &detail, nil
}

func (s *SubtaskService) GetSubtask(ctx context.Context, userID, taskID, subtaskID int) (*entity.SubtaskDetail, error) {
	subtask, err := s.getSubtask(ctx, userID, taskID, subtaskID)
	if err != nil {
		return nil, err
	}

	detail := entity.NewSubtaskDetail(subtask, s.clock())
	return &detail, nil
}

func (s *SubtaskService) UpdateSubtask(ctx context.Context, userID, taskID, subtaskID int, req *entity.UpdateSubtaskRequest) (*entity.SubtaskDetail, error) {
	if req.IsEmpty() {
		return nil, entity.ErrNoFieldsToUpdate
	}

	subtask, err := s.getSubtask(ctx, userID, taskID, subtaskID)
	if err != nil {
		return nil, err
	}
	oldSubtask := *subtask

	now := s.clock()
	applySubtaskUpdate(subtask, req, now)
	if err := subtask.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.subtaskRepo.Update(ctx, subtask)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrSubtaskNotFound
	}

	s.audit.send(entity.ActionUpdate, entity.EntitySubtask, userID, subtaskID, &oldSubtask, updated)

	detail := entity.NewSubtaskDetail(updated, now)
	return &detail, nil
}

func (s *SubtaskService) DeleteSubtask(ctx context.Context, userID, taskID, subtaskID int) error {
	subtask, err := s.getSubtask(ctx, userID, taskID, subtaskID)
	if err != nil {
		return err
	}

	deleted, err := s.subtaskRepo.Delete(ctx, taskID, subtaskID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrSubtaskNotFound
	}

	s.audit.send(entity.ActionDelete, entity.EntitySubtask, userID, subtaskID, subtask, nil)

	return nil
}

func (s *SubtaskService) checkTask(ctx context.Context, userID, taskID int) error {
	task, err := s.taskRepo.GetByID(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if task == nil {
		return entity.ErrTaskNotFound
	}
	return nil
}

func (s *SubtaskService) getSubtask(ctx context.Context, userID, taskID, subtaskID int) (*entity.Subtask, error) {
	if err := s.checkTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	subtask, err := s.subtaskRepo.GetByID(ctx, taskID, subtaskID)
	if err != nil {
		return nil, err
	}
	if subtask == nil {
		return nil, entity.ErrSubtaskNotFound
	}
	return subtask, nil
}

func applySubtaskUpdate(subtask *entity.Subtask, req *entity.UpdateSubtaskRequest, now time.Time) {
	if req.Title != nil {
		subtask.Title = *req.Title
	}
	if req.Description != nil {
		subtask.Description = *req.Description
	}
	if req.Order != nil {
		subtask.Order = *req.Order
	}
	if req.Priority != nil {
		subtask.Priority = *req.Priority
	}
	req.DueDate.Apply(&subtask.DueDate)
	req.Reminder.Apply(&subtask.Reminder)
	req.EstimatedDuration.Apply(&subtask.EstimatedDuration)
	if req.Notes != nil {
		subtask.Notes = *req.Notes
	}
	if req.Completed != nil {
		subtask.SetCompleted(*req.Completed, now)
	}
}
