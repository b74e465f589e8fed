package usecase

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

type CategoryService struct {
	categoryRepo repository.ICategoryRepository
	taskRepo     repository.ITaskRepository
	audit        auditor
	clock        Clock
}

func NewCategoryService(
	categoryRepo repository.ICategoryRepository,
	taskRepo repository.ITaskRepository,
	rabbitMQ RabbitMQPublisher,
	clock Clock,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		taskRepo:     taskRepo,
		audit:        auditor{publisher: rabbitMQ, clock: clock},
		clock:        clock,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context, userID int) ([]entity.CategoryWithStats, error) {
	categories, err := s.categoryRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.CategoryWithStats, 0, len(categories))
	for i := range categories {
		withStats, err := s.withStats(ctx, &categories[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *withStats)
	}
	return out, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, userID, categoryID int) (*entity.CategoryWithStats, error) {
	category, err := s.getCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, category)
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID int, req *entity.CreateCategoryRequest) (*entity.CategoryWithStats, error) {
	category := req.ToCategory(userID)
	if err := category.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, userID, category.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.ErrDuplicateCategoryName
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.audit.send(entity.ActionCreate, entity.EntityCategory, userID, created.ID, nil, created)

	return s.withStats(ctx, created)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID int, req *entity.UpdateCategoryRequest) (*entity.CategoryWithStats, error) {
	if req.Name == nil && req.Description == nil && req.Color == nil {
		return nil, entity.ErrNoFieldsToUpdate
	}

	category, err := s.getCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	oldCategory := *category

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, userID, category.Name, category.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.ErrDuplicateCategoryName
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrCategoryNotFound
	}

	s.audit.send(entity.ActionUpdate, entity.EntityCategory, userID, categoryID, &oldCategory, updated)

	return s.withStats(ctx, updated)
}

// DeleteCategory - задачи категории остаются без категории
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID int) error {
	category, err := s.getCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}

	deleted, err := s.categoryRepo.Delete(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrCategoryNotFound
	}

	s.audit.send(entity.ActionDelete, entity.EntityCategory, userID, categoryID, category, nil)

	return nil
}

// getCategory - чужая категория неотличима от несуществующей
func (s *CategoryService) getCategory(ctx context.Context, userID, categoryID int) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.OwnerID != userID {
		return nil, entity.ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) withStats(ctx context.Context, category *entity.Category) (*entity.CategoryWithStats, error) {
	stats, err := s.taskRepo.Stats(ctx, category.OwnerID, entity.TaskFilter{CategoryID: &category.ID}, s.clock())
	if err != nil {
		return nil, err
	}
	return &entity.CategoryWithStats{Category: *category, TaskStats: stats}, nil
}
