package repository

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const subtaskColumns = `
	id, task_id, title, description, completed, "order", priority, due_date, reminder,
	estimated_duration, notes, created_at, updated_at, completed_at
`

type SubtaskRepository struct {
	db *pgxpool.Pool
}

func NewSubtaskRepository(db *pgxpool.Pool) *SubtaskRepository {
	return &SubtaskRepository{
		db: db,
	}
}

func scanSubtask(row pgx.Row) (*entity.Subtask, error) {
	var s entity.Subtask
	var estimated pgtype.Interval

	err := row.Scan(
		&s.ID,
		&s.TaskID,
		&s.Title,
		&s.Description,
		&s.Completed,
		&s.Order,
		&s.Priority,
		&s.DueDate,
		&s.Reminder,
		&estimated,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	s.EstimatedDuration = fromInterval(estimated)
	return &s, nil
}

func (r *SubtaskRepository) Create(ctx context.Context, s *entity.Subtask) (*entity.Subtask, error) {
	query := `
	INSERT INTO subtask (task_id, title, description, completed, "order", priority, due_date,
		reminder, estimated_duration, notes, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + subtaskColumns

	return scanSubtask(querier(ctx, r.db).QueryRow(ctx, query,
		s.TaskID,
		s.Title,
		s.Description,
		s.Completed,
		s.Order,
		s.Priority,
		s.DueDate,
		s.Reminder,
		toInterval(s.EstimatedDuration),
		s.Notes,
		s.CompletedAt,
	))
}

// GetByID ищет подзадачу в пределах задачи
func (r *SubtaskRepository) GetByID(ctx context.Context, taskID, id int) (*entity.Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtask WHERE id = $1 AND task_id = $2`

	s, err := scanSubtask(querier(ctx, r.db).QueryRow(ctx, query, id, taskID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *SubtaskRepository) Update(ctx context.Context, s *entity.Subtask) (*entity.Subtask, error) {
	query := `
	UPDATE subtask
	SET title = $1, description = $2, completed = $3, "order" = $4, priority = $5,
		due_date = $6, reminder = $7, estimated_duration = $8, notes = $9,
		completed_at = $10, updated_at = CURRENT_TIMESTAMP
	WHERE id = $11 AND task_id = $12
	RETURNING ` + subtaskColumns

	updated, err := scanSubtask(querier(ctx, r.db).QueryRow(ctx, query,
		s.Title,
		s.Description,
		s.Completed,
		s.Order,
		s.Priority,
		s.DueDate,
		s.Reminder,
		toInterval(s.EstimatedDuration),
		s.Notes,
		s.CompletedAt,
		s.ID,
		s.TaskID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return updated, nil
}

func (r *SubtaskRepository) Delete(ctx context.Context, taskID, id int) (bool, error) {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM subtask WHERE id = $1 AND task_id = $2`, id, taskID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByTask - подзадачи в порядке отображения
func (r *SubtaskRepository) ListByTask(ctx context.Context, taskID int) ([]entity.Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtask WHERE task_id = $1 ORDER BY "order", created_at, id`

	rows, err := querier(ctx, r.db).Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subtasks := make([]entity.Subtask, 0)
	for rows.Next() {
		s, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, *s)
	}

	return subtasks, rows.Err()
}
