package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/infrastructure/auth"
	"github.com/go-chi/chi/v5"
)

var errInvalidJSON = fmt.Errorf("invalid JSON: %w", entity.ErrInvalidInput)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Ошибка записи ответа: %v", err)
	}
}

// writeError переводит ошибку сервиса в HTTP статус по классу ошибки
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("❌ Внутренняя ошибка: %v", err)
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrPreconditionFailed),
		errors.Is(err, entity.ErrDuplicateName),
		errors.Is(err, entity.ErrForeignOwnership),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// decodeOptionalJSON допускает пустое тело
func decodeOptionalJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return errInvalidJSON
	}
	return nil
}

// pathID - положительный id из пути запроса
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %w", name, entity.ErrInvalidInput)
	}
	return id, nil
}

// currentUser - id пользователя, положенный AuthMiddleware
func currentUser(r *http.Request) int {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}
