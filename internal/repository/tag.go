package repository

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tagColumns = `id, owner_id, name, color, created_at, updated_at`

type TagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{
		db: db,
	}
}

func scanTag(row pgx.Row) (*entity.Tag, error) {
	var t entity.Tag
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepository) Create(ctx context.Context, t *entity.Tag) (*entity.Tag, error) {
	query := `
	INSERT INTO tag (owner_id, name, color)
	VALUES ($1, $2, $3)
	RETURNING ` + tagColumns

	created, err := scanTag(querier(ctx, r.db).QueryRow(ctx, query, t.OwnerID, t.Name, t.Color))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateTagName
		}
		return nil, err
	}
	return created, nil
}

func (r *TagRepository) GetByID(ctx context.Context, id int) (*entity.Tag, error) {
	t, err := scanTag(querier(ctx, r.db).QueryRow(ctx, `SELECT `+tagColumns+` FROM tag WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *TagRepository) ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error) {
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tag WHERE owner_id = $1 AND name = $2 AND id <> $3)`,
		ownerID, name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *TagRepository) Update(ctx context.Context, t *entity.Tag) (*entity.Tag, error) {
	query := `
	UPDATE tag
	SET name = $1, color = $2, updated_at = CURRENT_TIMESTAMP
	WHERE id = $3 AND owner_id = $4
	RETURNING ` + tagColumns

	updated, err := scanTag(querier(ctx, r.db).QueryRow(ctx, query, t.Name, t.Color, t.ID, t.OwnerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateTagName
		}
		return nil, err
	}
	return updated, nil
}

// Delete - связи task_tags удаляются каскадом, сами задачи остаются
func (r *TagRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM tag WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TagRepository) List(ctx context.Context, ownerID int) ([]entity.Tag, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+tagColumns+` FROM tag WHERE owner_id = $1 ORDER BY name, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]entity.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}

	return tags, rows.Err()
}

func (r *TagRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM tag WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}
