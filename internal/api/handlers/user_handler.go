package handlers

import (
	"context"
	"net/http"

	"github.com/St1cky1/taskmanager/internal/entity"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID int) (*entity.UserProfile, error)
	UpdateUser(ctx context.Context, userID int, req *entity.UpdateUserRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, userID int) error
}

type UserHandler struct {
	userService UserUsecase
}

func NewUserHandler(userService UserUsecase) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), currentUser(r), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.DeleteUser(r.Context(), currentUser(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
