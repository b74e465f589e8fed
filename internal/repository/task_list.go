package repository

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskListColumns = `id, owner_id, name, description, custom_profile, auto_suggestion, created_at, updated_at`

type TaskListRepository struct {
	db *pgxpool.Pool
}

func NewTaskListRepository(db *pgxpool.Pool) *TaskListRepository {
	return &TaskListRepository{
		db: db,
	}
}

func scanTaskList(row pgx.Row) (*entity.TaskList, error) {
	var l entity.TaskList
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.Name,
		&l.Description,
		&l.CustomProfile,
		&l.AutoSuggestion,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *TaskListRepository) Create(ctx context.Context, l *entity.TaskList) (*entity.TaskList, error) {
	query := `
	INSERT INTO task_list (owner_id, name, description, custom_profile, auto_suggestion)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + taskListColumns

	created, err := scanTaskList(querier(ctx, r.db).QueryRow(ctx, query,
		l.OwnerID, l.Name, l.Description, l.CustomProfile, l.AutoSuggestion))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateListName
		}
		return nil, err
	}
	return created, nil
}

func (r *TaskListRepository) GetByID(ctx context.Context, id int) (*entity.TaskList, error) {
	l, err := scanTaskList(querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+taskListColumns+` FROM task_list WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

func (r *TaskListRepository) ExistsByName(ctx context.Context, ownerID int, name string, excludeID int) (bool, error) {
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_list WHERE owner_id = $1 AND name = $2 AND id <> $3)`,
		ownerID, name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *TaskListRepository) Update(ctx context.Context, l *entity.TaskList) (*entity.TaskList, error) {
	query := `
	UPDATE task_list
	SET name = $1, description = $2, custom_profile = $3, auto_suggestion = $4,
		updated_at = CURRENT_TIMESTAMP
	WHERE id = $5 AND owner_id = $6
	RETURNING ` + taskListColumns

	updated, err := scanTaskList(querier(ctx, r.db).QueryRow(ctx, query,
		l.Name, l.Description, l.CustomProfile, l.AutoSuggestion, l.ID, l.OwnerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateListName
		}
		return nil, err
	}
	return updated, nil
}

// Delete - задачи списка остаются, list_id обнуляется
func (r *TaskListRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM task_list WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskListRepository) List(ctx context.Context, ownerID int) ([]entity.TaskList, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+taskListColumns+` FROM task_list WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := make([]entity.TaskList, 0)
	for rows.Next() {
		l, err := scanTaskList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *l)
	}

	return lists, rows.Err()
}

func (r *TaskListRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM task_list WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}
