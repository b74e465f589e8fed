package handlers

import (
	"context"
	"net/http"

	"github.com/St1cky1/taskmanager/internal/entity"
)

type TaskListUsecase interface {
	ListTaskLists(ctx context.Context, userID int) ([]entity.TaskListWithStats, error)
	GetTaskList(ctx context.Context, userID, listID int) (*entity.TaskListWithStats, error)
	CreateTaskList(ctx context.Context, userID int, req *entity.CreateTaskListRequest) (*entity.TaskListWithStats, error)
	UpdateTaskList(ctx context.Context, userID, listID int, req *entity.UpdateTaskListRequest) (*entity.TaskListWithStats, error)
	DeleteTaskList(ctx context.Context, userID, listID int) error
	ListTasks(ctx context.Context, userID, listID int) (*entity.TaskListTasks, error)
}

type TaskListHandler struct {
	listService TaskListUsecase
}

func NewTaskListHandler(listService TaskListUsecase) *TaskListHandler {
	return &TaskListHandler{listService: listService}
}

func (h *TaskListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.listService.ListTaskLists(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *TaskListHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	list, err := h.listService.GetTaskList(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TaskListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTaskListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	list, err := h.listService.CreateTaskList(r.Context(), currentUser(r), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (h *TaskListHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req entity.UpdateTaskListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	list, err := h.listService.UpdateTaskList(r.Context(), currentUser(r), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TaskListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.listService.DeleteTaskList(r.Context(), currentUser(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskListHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	listTasks, err := h.listService.ListTasks(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listTasks)
}
