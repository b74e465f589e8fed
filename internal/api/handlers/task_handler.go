package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/St1cky1/taskmanager/internal/entity"
)

type TaskUsecase interface {
	CreateTask(ctx context.Context, userID int, req *entity.CreateTaskRequest) (*entity.TaskDetail, error)
	GetTask(ctx context.Context, userID, taskID int) (*entity.TaskDetail, error)
	UpdateTask(ctx context.Context, userID, taskID int, req *entity.UpdateTaskRequest) (*entity.TaskDetail, error)
	DeleteTask(ctx context.Context, userID, taskID int) error
	ListTasks(ctx context.Context, userID int, filter entity.TaskFilter) ([]entity.TaskSummary, error)
	OverdueTasks(ctx context.Context, userID int) ([]entity.TaskSummary, error)
	TodayTasks(ctx context.Context, userID int) ([]entity.TaskSummary, error)
	CompleteTask(ctx context.Context, userID, taskID int, notes string) (*entity.TaskDetail, error)
	UncompleteTask(ctx context.Context, userID, taskID int) (*entity.TaskDetail, error)
	UpdateHistory(ctx context.Context, userID, taskID int, req *entity.UpdateTaskHistoryRequest) (*entity.TaskHistoryDetail, error)
}

type AuditUsecase interface {
	TaskAuditLog(ctx context.Context, userID, taskID int) ([]entity.TaskAudit, error)
}

type TaskHandler struct {
	taskService  TaskUsecase
	auditService AuditUsecase
}

func NewTaskHandler(taskService TaskUsecase, auditService AuditUsecase) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		auditService: auditService,
	}
}

type completeTaskRequest struct {
	Notes string `json:"notes"`
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), currentUser(r), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), currentUser(r), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req entity.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), currentUser(r), taskID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), currentUser(r), taskID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), currentUser(r), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) OverdueTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.OverdueTasks(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) TodayTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.TodayTasks(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CompleteTask - тело {"notes": "..."} необязательно
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req completeTaskRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), currentUser(r), taskID, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UncompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.taskService.UncompleteTask(r.Context(), currentUser(r), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateHistory(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req entity.UpdateTaskHistoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	history, err := h.taskService.UpdateHistory(r.Context(), currentUser(r), taskID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *TaskHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.auditService.TaskAuditLog(r.Context(), currentUser(r), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// parseTaskFilter читает completed, priority, category, task_list, tag,
// search и ordering из query string
func parseTaskFilter(r *http.Request) (entity.TaskFilter, error) {
	q := r.URL.Query()
	filter := entity.TaskFilter{
		Priority: entity.Priority(q.Get("priority")),
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}

	if filter.Priority != "" && !filter.Priority.IsValid() {
		return filter, entity.ErrInvalidPriority
	}

	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("invalid completed: %w", entity.ErrInvalidInput)
		}
		filter.Completed = &completed
	}

	for param, target := range map[string]**int{
		"category":  &filter.CategoryID,
		"task_list": &filter.ListID,
		"tag":       &filter.TagID,
	} {
		v := q.Get(param)
		if v == "" {
			continue
		}
		id, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("invalid %s: %w", param, entity.ErrInvalidInput)
		}
		*target = &id
	}

	return filter, nil
}
