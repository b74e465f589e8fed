package repository

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id, owner_id, name, description, color, created_at, updated_at`

type CategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	query := `
	INSERT INTO category (owner_id, name, description, color)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + categoryColumns

	created, err := scanCategory(querier(ctx, r.db).QueryRow(ctx, query, c.OwnerID, c.Name, c.Description, c.Color))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateCategoryName
		}
		return nil, err
	}
	return created, nil
}

// GetByID не фильтрует по владельцу: проверка принадлежности на стороне сервиса
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM category WHERE id = $1`

	c, err := scanCategory(querier(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// ExistsByName - excludeID исключает саму категорию при переименовании
func (r *CategoryRepository) ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error) {
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM category WHERE owner_id = $1 AND name = $2 AND id <> $3)`,
		ownerID, name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	query := `
	UPDATE category
	SET name = $1, description = $2, color = $3, updated_at = CURRENT_TIMESTAMP
	WHERE id = $4 AND owner_id = $5
	RETURNING ` + categoryColumns

	updated, err := scanCategory(querier(ctx, r.db).QueryRow(ctx, query, c.Name, c.Description, c.Color, c.ID, c.OwnerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateCategoryName
		}
		return nil, err
	}
	return updated, nil
}

// Delete - у задач категории category_id обнуляется внешним ключом
func (r *CategoryRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM category WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CategoryRepository) List(ctx context.Context, ownerID int) ([]entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM category WHERE owner_id = $1 ORDER BY name, id`

	rows, err := querier(ctx, r.db).Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}

	return categories, rows.Err()
}

func (r *CategoryRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM category WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}
