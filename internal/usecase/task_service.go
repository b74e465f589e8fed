package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

type TaskService struct {
	tx           repository.ITransactor
	taskRepo     repository.ITaskRepository
	subtaskRepo  repository.ISubtaskRepository
	historyRepo  repository.ITaskHistoryRepository
	listRepo     repository.ITaskListRepository
	categoryRepo repository.ICategoryRepository
	tagRepo      repository.ITagRepository
	audit        auditor
	clock        Clock
}

func NewTaskService(
	tx repository.ITransactor,
	taskRepo repository.ITaskRepository,
	subtaskRepo repository.ISubtaskRepository,
	historyRepo repository.ITaskHistoryRepository,
	listRepo repository.ITaskListRepository,
	categoryRepo repository.ICategoryRepository,
	tagRepo repository.ITagRepository,
	rabbitMQ RabbitMQPublisher,
	clock Clock,
) *TaskService {
	return &TaskService{
		tx:           tx,
		taskRepo:     taskRepo,
		subtaskRepo:  subtaskRepo,
		historyRepo:  historyRepo,
		listRepo:     listRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		audit:        auditor{publisher: rabbitMQ, clock: clock},
		clock:        clock,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, userID int, req *entity.CreateTaskRequest) (*entity.TaskDetail, error) {
	task := &entity.Task{
		OwnerID:           userID,
		ListID:            optionalRef(req.ListID),
		CategoryID:        optionalRef(req.CategoryID),
		Title:             req.Title,
		Description:       req.Description,
		DueDate:           req.DueDate,
		Priority:          req.Priority,
		Reminder:          req.Reminder,
		EstimatedDuration: req.EstimatedDuration,
		TagIDs:            uniqueIDs(req.TagIDs),
	}
	if task.Priority == "" {
		task.Priority = entity.PriorityMedium
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, userID, task.ListID, task.CategoryID, task.TagIDs); err != nil {
		return nil, err
	}

	var created *entity.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.taskRepo.Create(ctx, task)
		if err != nil {
			return err
		}
		// новая задача без подзадач, поэтому завершение всегда проходит
		if req.Completed {
			created, err = s.complete(ctx, created, "")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.send(entity.ActionCreate, entity.EntityTask, userID, created.ID, nil, created)

	return s.detail(ctx, created)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID int) (*entity.TaskDetail, error) {
	task, err := s.getTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, task)
}

// UpdateTask - частичное обновление. Изменение completed проходит через
// те же правила, что и CompleteTask/UncompleteTask.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID int, req *entity.UpdateTaskRequest) (*entity.TaskDetail, error) {
	if req.IsEmpty() {
		return nil, entity.ErrNoFieldsToUpdate
	}

	var oldTask, updated *entity.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.GetForUpdate(ctx, taskID, userID)
		if err != nil {
			return err
		}
		if task == nil {
			return entity.ErrTaskNotFound
		}
		before := *task
		oldTask = &before

		applyTaskUpdate(task, req)
		if err := task.Validate(); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, userID, task.ListID, task.CategoryID, task.TagIDs); err != nil {
			return err
		}

		if req.Completed != nil && *req.Completed != task.Completed {
			if *req.Completed {
				if err := s.completeInPlace(ctx, task, ""); err != nil {
					return err
				}
			} else {
				if err := s.uncompleteInPlace(ctx, task); err != nil {
					return err
				}
			}
		}

		if req.TagIDs != nil {
			if err := s.taskRepo.SetTags(ctx, task.ID, task.TagIDs); err != nil {
				return err
			}
		}

		updated, err = s.taskRepo.Update(ctx, task)
		if err != nil {
			return err
		}
		if updated == nil {
			return entity.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.send(entity.ActionUpdate, entity.EntityTask, userID, taskID, oldTask, updated)

	return s.detail(ctx, updated)
}

// DeleteTask - подзадачи и история удаляются вместе с задачей
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID int) error {
	task, err := s.getTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	deleted, err := s.taskRepo.Delete(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrTaskNotFound
	}

	s.audit.send(entity.ActionDelete, entity.EntityTask, userID, taskID, task, nil)

	return nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID int, filter entity.TaskFilter) ([]entity.TaskSummary, error) {
	tasks, err := s.taskRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return s.summaries(tasks), nil
}

// OverdueTasks - незавершённые задачи со сроком в прошлом
func (s *TaskService) OverdueTasks(ctx context.Context, userID int) ([]entity.TaskSummary, error) {
	now := s.clock()
	completed := false

	return s.ListTasks(ctx, userID, entity.TaskFilter{
		Completed: &completed,
		DueBefore: &now,
		Ordering:  "due_date",
	})
}

// TodayTasks - задачи со сроком на сегодняшнюю календарную дату
func (s *TaskService) TodayTasks(ctx context.Context, userID int) ([]entity.TaskSummary, error) {
	now := s.clock()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	return s.ListTasks(ctx, userID, entity.TaskFilter{
		DueFrom:   &start,
		DueBefore: &end,
		Ordering:  "due_date",
	})
}

// CompleteTask отмечает задачу выполненной. Если выполнены не все подзадачи,
// возвращает entity.ErrIncompleteSubtasks.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID int, notes string) (*entity.TaskDetail, error) {
	var completed *entity.Task
	var wasCompleted bool

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.GetForUpdate(ctx, taskID, userID)
		if err != nil {
			return err
		}
		if task == nil {
			return entity.ErrTaskNotFound
		}
		wasCompleted = task.Completed

		completed, err = s.complete(ctx, task, notes)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !wasCompleted {
		s.audit.send(entity.ActionComplete, entity.EntityTask, userID, taskID, nil, completed)
	}

	return s.detail(ctx, completed)
}

// UncompleteTask идемпотентен: повторный вызов ничего не меняет
func (s *TaskService) UncompleteTask(ctx context.Context, userID, taskID int) (*entity.TaskDetail, error) {
	var task *entity.Task
	var wasCompleted bool

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepo.GetForUpdate(ctx, taskID, userID)
		if err != nil {
			return err
		}
		if task == nil {
			return entity.ErrTaskNotFound
		}
		wasCompleted = task.Completed

		if err := s.uncompleteInPlace(ctx, task); err != nil {
			return err
		}

		updated, err := s.taskRepo.Update(ctx, task)
		if err != nil {
			return err
		}
		if updated == nil {
			return entity.ErrTaskNotFound
		}
		task = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if wasCompleted {
		s.audit.send(entity.ActionUncomplete, entity.EntityTask, userID, taskID, nil, task)
	}

	return s.detail(ctx, task)
}

// UpdateHistory дописывает фактическую длительность и заметки к истории завершения
func (s *TaskService) UpdateHistory(ctx context.Context, userID, taskID int, req *entity.UpdateTaskHistoryRequest) (*entity.TaskHistoryDetail, error) {
	if req.ActualDuration == nil && req.Notes == nil {
		return nil, entity.ErrNoFieldsToUpdate
	}
	if req.ActualDuration != nil && *req.ActualDuration < 0 {
		return nil, entity.ErrInvalidDuration
	}

	if _, err := s.getTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	history, err := s.historyRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, entity.ErrHistoryNotFound
	}

	if req.ActualDuration != nil {
		history.ActualDuration = req.ActualDuration
	}
	if req.Notes != nil {
		history.Notes = *req.Notes
	}

	updated, err := s.historyRepo.Update(ctx, history)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrHistoryNotFound
	}

	return entity.NewTaskHistoryDetail(updated), nil
}

// complete сохраняет завершённую задачу. Вызывать внутри транзакции.
func (s *TaskService) complete(ctx context.Context, task *entity.Task, notes string) (*entity.Task, error) {
	if err := s.completeInPlace(ctx, task, notes); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrTaskNotFound
	}
	return updated, nil
}

// completeInPlace проверяет подзадачи, выставляет completed/completed_at
// и создаёт историю, если её ещё нет
func (s *TaskService) completeInPlace(ctx context.Context, task *entity.Task, notes string) error {
	subtasks, err := s.subtaskRepo.ListByTask(ctx, task.ID)
	if err != nil {
		return err
	}

	now := s.clock()
	if err := task.Complete(subtasks, now); err != nil {
		return err
	}

	exists, err := s.historyRepo.ExistsForTask(ctx, task.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.historyRepo.Create(ctx, entity.NewTaskHistory(task, notes, now))
	return err
}

func (s *TaskService) uncompleteInPlace(ctx context.Context, task *entity.Task) error {
	task.Uncomplete()
	return s.historyRepo.DeleteByTaskID(ctx, task.ID)
}

// checkReferences: несуществующая ссылка - NotFound, чужая - ForeignOwnership
func (s *TaskService) checkReferences(ctx context.Context, userID int, listID, categoryID *int, tagIDs []int) error {
	if listID != nil {
		list, err := s.listRepo.GetByID(ctx, *listID)
		if err != nil {
			return err
		}
		if list == nil {
			return entity.ErrListNotFound
		}
		if list.OwnerID != userID {
			return entity.ErrForeignList
		}
	}

	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return entity.ErrCategoryNotFound
		}
		if category.OwnerID != userID {
			return entity.ErrForeignCategory
		}
	}

	for _, tagID := range tagIDs {
		tag, err := s.tagRepo.GetByID(ctx, tagID)
		if err != nil {
			return err
		}
		if tag == nil {
			return entity.ErrTagNotFound
		}
		if tag.OwnerID != userID {
			return entity.ErrForeignTag
		}
	}

	return nil
}

func (s *TaskService) getTask(ctx context.Context, userID, taskID int) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) detail(ctx context.Context, task *entity.Task) (*entity.TaskDetail, error) {
	subtasks, err := s.subtaskRepo.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.GetByTaskID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	return entity.NewTaskDetail(task, subtasks, history, s.clock()), nil
}

func (s *TaskService) summaries(tasks []entity.Task) []entity.TaskSummary {
	now := s.clock()
	out := make([]entity.TaskSummary, 0, len(tasks))
	for i := range tasks {
		out = append(out, entity.NewTaskSummary(&tasks[i], now))
	}
	return out
}

// applyTaskUpdate переносит заданные поля запроса. completed здесь не трогается.
func applyTaskUpdate(task *entity.Task, req *entity.UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	req.DueDate.Apply(&task.DueDate)
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	req.Reminder.Apply(&task.Reminder)
	req.EstimatedDuration.Apply(&task.EstimatedDuration)
	if req.ListID.Set {
		task.ListID = optionalRef(req.ListID.Value)
	}
	if req.CategoryID.Set {
		task.CategoryID = optionalRef(req.CategoryID.Value)
	}
	if req.TagIDs != nil {
		task.TagIDs = uniqueIDs(*req.TagIDs)
	}
}

// optionalRef: 0 означает "без ссылки"
func optionalRef(id *int) *int {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
