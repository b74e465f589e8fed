package usecase

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

type TaskListService struct {
	listRepo repository.ITaskListRepository
	taskRepo repository.ITaskRepository
	audit    auditor
	clock    Clock
}

func NewTaskListService(
	listRepo repository.ITaskListRepository,
	taskRepo repository.ITaskRepository,
	rabbitMQ RabbitMQPublisher,
	clock Clock,
) *TaskListService {
	return &TaskListService{
		listRepo: listRepo,
		taskRepo: taskRepo,
		audit:    auditor{publisher: rabbitMQ, clock: clock},
		clock:    clock,
	}
}

func (s *TaskListService) ListTaskLists(ctx context.Context, userID int) ([]entity.TaskListWithStats, error) {
	lists, err := s.listRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.TaskListWithStats, 0, len(lists))
	for i := range lists {
		withStats, err := s.withStats(ctx, &lists[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *withStats)
	}
	return out, nil
}

func (s *TaskListService) GetTaskList(ctx context.Context, userID, listID int) (*entity.TaskListWithStats, error) {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, list)
}

func (s *TaskListService) CreateTaskList(ctx context.Context, userID int, req *entity.CreateTaskListRequest) (*entity.TaskListWithStats, error) {
	list := req.ToTaskList(userID)
	if err := list.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.listRepo.ExistsByName(ctx, userID, list.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.ErrDuplicateListName
	}

	created, err := s.listRepo.Create(ctx, list)
	if err != nil {
		return nil, err
	}

	s.audit.send(entity.ActionCreate, entity.EntityList, userID, created.ID, nil, created)

	return s.withStats(ctx, created)
}

func (s *TaskListService) UpdateTaskList(ctx context.Context, userID, listID int, req *entity.UpdateTaskListRequest) (*entity.TaskListWithStats, error) {
	if req.Name == nil && req.Description == nil && req.CustomProfile == nil && req.AutoSuggestion == nil {
		return nil, entity.ErrNoFieldsToUpdate
	}

	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	oldList := *list

	if req.Name != nil {
		list.Name = *req.Name
	}
	if req.Description != nil {
		list.Description = *req.Description
	}
	if req.CustomProfile != nil {
		list.CustomProfile = *req.CustomProfile
	}
	if req.AutoSuggestion != nil {
		list.AutoSuggestion = *req.AutoSuggestion
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.listRepo.ExistsByName(ctx, userID, list.Name, list.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.ErrDuplicateListName
	}

	updated, err := s.listRepo.Update(ctx, list)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrListNotFound
	}

	s.audit.send(entity.ActionUpdate, entity.EntityList, userID, listID, &oldList, updated)

	return s.withStats(ctx, updated)
}

// DeleteTaskList - задачи списка не удаляются
func (s *TaskListService) DeleteTaskList(ctx context.Context, userID, listID int) error {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return err
	}

	deleted, err := s.listRepo.Delete(ctx, listID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrListNotFound
	}

	s.audit.send(entity.ActionDelete, entity.EntityList, userID, listID, list, nil)

	return nil
}

// ListTasks - задачи одного списка. Счётчики считаются по тем же задачам.
func (s *TaskListService) ListTasks(ctx context.Context, userID, listID int) (*entity.TaskListTasks, error) {
	list, err := s.getList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, userID, entity.TaskFilter{ListID: &listID})
	if err != nil {
		return nil, err
	}

	now := s.clock()
	out := &entity.TaskListTasks{
		TaskListWithStats: entity.TaskListWithStats{TaskList: *list, TaskStats: entity.CountTasks(tasks, now)},
		Tasks:             make([]entity.TaskSummary, 0, len(tasks)),
	}
	for i := range tasks {
		out.Tasks = append(out.Tasks, entity.NewTaskSummary(&tasks[i], now))
	}
	return out, nil
}

func (s *TaskListService) getList(ctx context.Context, userID, listID int) (*entity.TaskList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil || list.OwnerID != userID {
		return nil, entity.ErrListNotFound
	}
	return list, nil
}

func (s *TaskListService) withStats(ctx context.Context, list *entity.TaskList) (*entity.TaskListWithStats, error) {
	stats, err := s.taskRepo.Stats(ctx, list.OwnerID, entity.TaskFilter{ListID: &list.ID}, s.clock())
	if err != nil {
		return nil, err
	}
	return &entity.TaskListWithStats{TaskList: *list, TaskStats: stats}, nil
}
