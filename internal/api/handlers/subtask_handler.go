package handlers

import (
	"context"
	"net/http"

	"github.com/St1cky1/taskmanager/internal/entity"
)

type SubtaskUsecase interface {
	ListSubtasks(ctx context.Context, userID, taskID int) ([]entity.SubtaskDetail, error)
	CreateSubtask(ctx context.Context, userID, taskID int, req *entity.CreateSubtaskRequest) (*entity.SubtaskDetail, error)
	GetSubtask(ctx context.Context, userID, taskID, subtaskID int) (*entity.SubtaskDetail, error)
	UpdateSubtask(ctx context.Context, userID, taskID, subtaskID int, req *entity.UpdateSubtaskRequest) (*entity.SubtaskDetail, error)
	DeleteSubtask(ctx context.Context, userID, taskID, subtaskID int) error
}

type SubtaskHandler struct {
	subtaskService SubtaskUsecase
}

func NewSubtaskHandler(subtaskService SubtaskUsecase) *SubtaskHandler {
	return &SubtaskHandler{subtaskService: subtaskService}
}

func (h *SubtaskHandler) ListSubtasks(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	subtasks, err := h.subtaskService.ListSubtasks(r.Context(), currentUser(r), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subtasks)
}

func (h *SubtaskHandler) CreateSubtask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req entity.CreateSubtaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	subtask, err := h.subtaskService.CreateSubtask(r.Context(), currentUser(r), taskID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, subtask)
}

func (h *SubtaskHandler) GetSubtask(w http.ResponseWriter, r *http.Request) {
	taskID, subtaskID, err := subtaskPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	subtask, err := h.subtaskService.GetSubtask(r.Context(), currentUser(r), taskID, subtaskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subtask)
}

func (h *SubtaskHandler) UpdateSubtask(w http.ResponseWriter, r *http.Request) {
	taskID, subtaskID, err := subtaskPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req entity.UpdateSubtaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	subtask, err := h.subtaskService.UpdateSubtask(r.Context(), currentUser(r), taskID, subtaskID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subtask)
}

func (h *SubtaskHandler) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	taskID, subtaskID, err := subtaskPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.subtaskService.DeleteSubtask(r.Context(), currentUser(r), taskID, subtaskID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func subtaskPath(r *http.Request) (taskID, subtaskID int, err error) {
	if taskID, err = pathID(r, "id"); err != nil {
		return 0, 0, err
	}
	if subtaskID, err = pathID(r, "subtaskID"); err != nil {
		return 0, 0, err
	}
	return taskID, subtaskID, nil
}
