package repository

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskHistoryRepository struct {
	db *pgxpool.Pool
}

func NewTaskHistoryRepository(db *pgxpool.Pool) *TaskHistoryRepository {
	return &TaskHistoryRepository{
		db: db,
	}
}

func scanHistory(row pgx.Row) (*entity.TaskHistory, error) {
	var h entity.TaskHistory
	var estimated, actual pgtype.Interval

	if err := row.Scan(&h.ID, &h.TaskID, &h.CompletionDate, &estimated, &actual, &h.Notes); err != nil {
		return nil, err
	}

	h.EstimatedDuration = fromInterval(estimated)
	h.ActualDuration = fromInterval(actual)
	return &h, nil
}

func (r *TaskHistoryRepository) ExistsForTask(ctx context.Context, taskID int) (bool, error) {
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_history WHERE task_id = $1)`, taskID,
	).Scan(&exists)
	return exists, err
}

func (r *TaskHistoryRepository) GetByTaskID(ctx context.Context, taskID int) (*entity.TaskHistory, error) {
	query := `
	SELECT id, task_id, completion_date, estimated_duration, actual_duration, notes
	FROM task_history
	WHERE task_id = $1
	`

	h, err := scanHistory(querier(ctx, r.db).QueryRow(ctx, query, taskID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return h, nil
}

// Create не перезаписывает существующую запись: при конфликте по task_id
// возвращается nil, nil
func (r *TaskHistoryRepository) Create(ctx context.Context, h *entity.TaskHistory) (*entity.TaskHistory, error) {
	query := `
	INSERT INTO task_history (task_id, completion_date, estimated_duration, actual_duration, notes)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (task_id) DO NOTHING
	RETURNING id, task_id, completion_date, estimated_duration, actual_duration, notes
	`

	created, err := scanHistory(querier(ctx, r.db).QueryRow(ctx, query,
		h.TaskID,
		h.CompletionDate,
		toInterval(h.EstimatedDuration),
		toInterval(h.ActualDuration),
		h.Notes,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return created, nil
}

// Update меняет только поля, которые пользователь может дописать после завершения
func (r *TaskHistoryRepository) Update(ctx context.Context, h *entity.TaskHistory) (*entity.TaskHistory, error) {
	query := `
	UPDATE task_history
	SET actual_duration = $1, notes = $2
	WHERE task_id = $3
	RETURNING id, task_id, completion_date, estimated_duration, actual_duration, notes
	`

	updated, err := scanHistory(querier(ctx, r.db).QueryRow(ctx, query,
		toInterval(h.ActualDuration),
		h.Notes,
		h.TaskID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return updated, nil
}

// DeleteByTaskID - отсутствие записи не ошибка
func (r *TaskHistoryRepository) DeleteByTaskID(ctx context.Context, taskID int) error {
	_, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM task_history WHERE task_id = $1`, taskID)
	return err
}
