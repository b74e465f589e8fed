package usecase

import (
	"context"
	"strings"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

type UserService struct {
	userRepo     repository.IUserRepository
	taskRepo     repository.ITaskRepository
	categoryRepo repository.ICategoryRepository
	tagRepo      repository.ITagRepository
	listRepo     repository.ITaskListRepository
	clock        Clock
}

func NewUserService(
	userRepo repository.IUserRepository,
	taskRepo repository.ITaskRepository,
	categoryRepo repository.ICategoryRepository,
	tagRepo repository.ITagRepository,
	listRepo repository.ITaskListRepository,
	clock Clock,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		listRepo:     listRepo,
		clock:        clock,
	}
}

// GetProfile - пользователь со счётчиками его данных
func (s *UserService) GetProfile(ctx context.Context, userID int) (*entity.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	stats, err := s.taskRepo.Stats(ctx, userID, entity.TaskFilter{}, s.clock())
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	lists, err := s.listRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entity.UserProfile{
		User:                *user,
		TasksCount:          stats.Total,
		CompletedTasksCount: stats.Completed,
		CategoriesCount:     categories,
		TagsCount:           tags,
		ListsCount:          lists,
	}, nil
}

// UpdateUser обновляет имя пользователя
func (s *UserService) UpdateUser(ctx context.Context, userID int, req *entity.UpdateUserRequest) (*entity.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, entity.ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.UpdateName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

// DeleteUser удаляет пользователя вместе со всеми его задачами
func (s *UserService) DeleteUser(ctx context.Context, userID int) error {
	deleted, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrUserNotFound
	}
	return nil
}
