package usecase

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

// AuditService - чтение журнала изменений, который пишет AuditWorker
type AuditService struct {
	auditRepo repository.ITaskAuditRepository
	taskRepo  repository.ITaskRepository
}

func NewAuditService(auditRepo repository.ITaskAuditRepository, taskRepo repository.ITaskRepository) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		taskRepo:  taskRepo,
	}
}

// TaskAuditLog - записи аудита задачи владельца, от новых к старым
func (s *AuditService) TaskAuditLog(ctx context.Context, userID, taskID int) ([]entity.TaskAudit, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	records, err := s.auditRepo.ListByEntity(ctx, entity.EntityTask, taskID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []entity.TaskAudit{}
	}
	return records, nil
}
