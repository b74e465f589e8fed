package usecase

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/repository"
)

type TagService struct {
	tagRepo  repository.ITagRepository
	taskRepo repository.ITaskRepository
	audit    auditor
	clock    Clock
}

func NewTagService(
	tagRepo repository.ITagRepository,
	taskRepo repository.ITaskRepository,
	rabbitMQ RabbitMQPublisher,
	clock Clock,
) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		taskRepo: taskRepo,
		audit:    auditor{publisher: rabbitMQ, clock: clock},
		clock:    clock,
	}
}

func (s *TagService) ListTags(ctx context.Context, userID int) ([]entity.TagWithStats, error) {
	tags, err := s.tagRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.TagWithStats, 0, len(tags))
	for i := range tags {
		withStats, err := s.withStats(ctx, &tags[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *withStats)
	}
	return out, nil
}

func (s *TagService) GetTag(ctx context.Context, userID, tagID int) (*entity.TagWithStats, error) {
	tag, err := s.getTag(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, tag)
}

func (s *TagService) CreateTag(ctx context.Context, userID int, req *entity.CreateTagRequest) (*entity.TagWithStats, error) {
	tag := req.ToTag(userID)
	if err := tag.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.tagRepo.ExistsByName(ctx, userID, tag.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.ErrDuplicateTagName
	}

	created, err := s.tagRepo.Create(ctx, tag)
	if err != nil {
		return nil, err
	}

	s.audit.send(entity.ActionCreate, entity.EntityTag, userID, created.ID, nil, created)

	return s.withStats(ctx, created)
}

func (s *TagService) UpdateTag(ctx context.Context, userID, tagID int, req *entity.UpdateTagRequest) (*entity.TagWithStats, error) {
	if req.Name == nil && req.Color == nil {
		return nil, entity.ErrNoFieldsToUpdate
	}

	tag, err := s.getTag(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}
	oldTag := *tag

	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.tagRepo.ExistsByName(ctx, userID, tag.Name, tag.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.ErrDuplicateTagName
	}

	updated, err := s.tagRepo.Update(ctx, tag)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, entity.ErrTagNotFound
	}

	s.audit.send(entity.ActionUpdate, entity.EntityTag, userID, tagID, &oldTag, updated)

	return s.withStats(ctx, updated)
}

// DeleteTag снимает тег со всех задач
func (s *TagService) DeleteTag(ctx context.Context, userID, tagID int) error {
	tag, err := s.getTag(ctx, userID, tagID)
	if err != nil {
		return err
	}

	deleted, err := s.tagRepo.Delete(ctx, tagID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrTagNotFound
	}

	s.audit.send(entity.ActionDelete, entity.EntityTag, userID, tagID, tag, nil)

	return nil
}

func (s *TagService) getTag(ctx context.Context, userID, tagID int) (*entity.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag == nil || tag.OwnerID != userID {
		return nil, entity.ErrTagNotFound
	}
	return tag, nil
}

func (s *TagService) withStats(ctx context.Context, tag *entity.Tag) (*entity.TagWithStats, error) {
	stats, err := s.taskRepo.Stats(ctx, tag.OwnerID, entity.TaskFilter{TagID: &tag.ID}, s.clock())
	if err != nil {
		return nil, err
	}
	return &entity.TagWithStats{Tag: *tag, TaskStats: stats}, nil
}
