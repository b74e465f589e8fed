package handlers

import (
	"context"
	"net/http"

	"github.com/St1cky1/taskmanager/internal/entity"
)

type TagUsecase interface {
	ListTags(ctx context.Context, userID int) ([]entity.TagWithStats, error)
	GetTag(ctx context.Context, userID, tagID int) (*entity.TagWithStats, error)
	CreateTag(ctx context.Context, userID int, req *entity.CreateTagRequest) (*entity.TagWithStats, error)
	UpdateTag(ctx context.Context, userID, tagID int, req *entity.UpdateTagRequest) (*entity.TagWithStats, error)
	DeleteTag(ctx context.Context, userID, tagID int) error
}

type TagHandler struct {
	tagService TagUsecase
}

func NewTagHandler(tagService TagUsecase) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListTags(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	tag, err := h.tagService.GetTag(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), currentUser(r), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req entity.UpdateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tag, err := h.tagService.UpdateTag(r.Context(), currentUser(r), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), currentUser(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
