package handlers

import (
	"context"
	"net/http"

	"github.com/St1cky1/taskmanager/internal/entity"
)

type CategoryUsecase interface {
	ListCategories(ctx context.Context, userID int) ([]entity.CategoryWithStats, error)
	GetCategory(ctx context.Context, userID, categoryID int) (*entity.CategoryWithStats, error)
	CreateCategory(ctx context.Context, userID int, req *entity.CreateCategoryRequest) (*entity.CategoryWithStats, error)
	UpdateCategory(ctx context.Context, userID, categoryID int, req *entity.UpdateCategoryRequest) (*entity.CategoryWithStats, error)
	DeleteCategory(ctx context.Context, userID, categoryID int) error
}

type CategoryHandler struct {
	categoryService CategoryUsecase
}

func NewCategoryHandler(categoryService CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListCategories(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), currentUser(r), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req entity.UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), currentUser(r), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), currentUser(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
