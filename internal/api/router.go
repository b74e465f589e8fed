package api

import (
	"context"
	"log"
	"net/http"

	"github.com/St1cky1/taskmanager/internal/api/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type AuthUsecase interface {
	handlers.AuthUsecase
	handlers.Authenticator
}

// Services - всё, что нужно HTTP API
type Services struct {
	Auth       AuthUsecase
	Users      handlers.UserUsecase
	Tasks      handlers.TaskUsecase
	Subtasks   handlers.SubtaskUsecase
	Audit      handlers.AuditUsecase
	Categories handlers.CategoryUsecase
	Tags       handlers.TagUsecase
	Lists      handlers.TaskListUsecase
	// Health проверяет хранилище, nil - всегда OK
	Health     func(ctx context.Context) error
}

func NewRouter(s Services) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authHandler := handlers.NewAuthHandler(s.Auth)
	userHandler := handlers.NewUserHandler(s.Users)
	taskHandler := handlers.NewTaskHandler(s.Tasks, s.Audit)
	subtaskHandler := handlers.NewSubtaskHandler(s.Subtasks)
	categoryHandler := handlers.NewCategoryHandler(s.Categories)
	tagHandler := handlers.NewTagHandler(s.Tags)
	listHandler := handlers.NewTaskListHandler(s.Lists)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.Health != nil {
			if err := s.Health(r.Context()); err != nil {
				log.Printf("❌ Health check failed: %v", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// всё остальное только с access token
		r.Group(func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(s.Auth))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", userHandler.GetProfile)
				r.Patch("/", userHandler.UpdateProfile)
				r.Delete("/", userHandler.DeleteProfile)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Get("/overdue", taskHandler.OverdueTasks)
				r.Get("/today", taskHandler.TodayTasks)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTask)
					r.Put("/", taskHandler.UpdateTask)
					r.Patch("/", taskHandler.UpdateTask)
					r.Delete("/", taskHandler.DeleteTask)
					r.Post("/complete", taskHandler.CompleteTask)
					r.Post("/uncomplete", taskHandler.UncompleteTask)
					r.Patch("/history", taskHandler.UpdateHistory)
					r.Get("/audit", taskHandler.AuditLog)

					r.Route("/subtasks", func(r chi.Router) {
						r.Get("/", subtaskHandler.ListSubtasks)
						r.Post("/", subtaskHandler.CreateSubtask)
						r.Get("/{subtaskID}", subtaskHandler.GetSubtask)
						r.Patch("/{subtaskID}", subtaskHandler.UpdateSubtask)
						r.Delete("/{subtaskID}", subtaskHandler.DeleteSubtask)
					})
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.List)
				r.Post("/", categoryHandler.Create)
				r.Get("/{id}", categoryHandler.Get)
				r.Patch("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", tagHandler.List)
				r.Post("/", tagHandler.Create)
				r.Get("/{id}", tagHandler.Get)
				r.Patch("/{id}", tagHandler.Update)
				r.Delete("/{id}", tagHandler.Delete)
			})

			r.Route("/lists", func(r chi.Router) {
				r.Get("/", listHandler.List)
				r.Post("/", listHandler.Create)
				r.Get("/{id}", listHandler.Get)
				r.Patch("/{id}", listHandler.Update)
				r.Delete("/{id}", listHandler.Delete)
				r.Get("/{id}/tasks", listHandler.Tasks)
			})
		})
	})

	return r
}
