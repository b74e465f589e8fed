package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `
	t.id, t.owner_id, t.list_id, t.category_id, t.title, t.description, t.due_date,
	t.completed, t.priority, t.reminder, t.estimated_duration,
	t.created_at, t.updated_at, t.completed_at,
	ARRAY(SELECT tt.tag_id FROM task_tags tt WHERE tt.task_id = t.id ORDER BY tt.tag_id)
`

// допустимые значения ?ordering=
var taskOrderings = map[string]string{
	"created_at": "t.created_at",
	"due_date":   "t.due_date",
	"title":      "t.title",
	"priority":   "CASE t.priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END",
}

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var task entity.Task
	var estimated pgtype.Interval

	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.ListID,
		&task.CategoryID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Completed,
		&task.Priority,
		&task.Reminder,
		&estimated,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CompletedAt,
		&task.TagIDs,
	)
	if err != nil {
		return nil, err
	}

	task.EstimatedDuration = fromInterval(estimated)
	return &task, nil
}

// Create - вставка задачи вместе с тегами. Вызывать внутри транзакции.
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
	INSERT INTO task (owner_id, list_id, category_id, title, description, due_date,
		completed, priority, reminder, estimated_duration, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id
	`

	var id int
	err := querier(ctx, r.db).QueryRow(ctx, query,
		task.OwnerID,
		task.ListID,
		task.CategoryID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.Priority,
		task.Reminder,
		toInterval(task.EstimatedDuration),
		task.CompletedAt,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	if err := r.SetTags(ctx, id, task.TagIDs); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id, task.OwnerID)
}

// GetByID - только задачи владельца; чужая задача неотличима от отсутствующей
func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID int) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task t WHERE t.id = $1 AND t.owner_id = $2`

	task, err := scanTask(querier(ctx, r.db).QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// GetForUpdate блокирует строку задачи до конца транзакции
func (r *TaskRepository) GetForUpdate(ctx context.Context, id, ownerID int) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task t WHERE t.id = $1 AND t.owner_id = $2 FOR UPDATE`

	task, err := scanTask(querier(ctx, r.db).QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// Update записывает строку целиком. Поля completed/completed_at к этому моменту
// уже согласованы через entity.Task.SetCompleted.
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
	UPDATE task
	SET list_id = $1, category_id = $2, title = $3, description = $4, due_date = $5,
		completed = $6, priority = $7, reminder = $8, estimated_duration = $9,
		completed_at = $10, updated_at = CURRENT_TIMESTAMP
	WHERE id = $11 AND owner_id = $12
	`

	tag, err := querier(ctx, r.db).Exec(ctx, query,
		task.ListID,
		task.CategoryID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.Priority,
		task.Reminder,
		toInterval(task.EstimatedDuration),
		task.CompletedAt,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, task.ID, task.OwnerID)
}

// SetTags заменяет набор тегов задачи
func (r *TaskRepository) SetTags(ctx context.Context, taskID int, tagIDs []int) error {
	q := querier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	_, err := q.Exec(ctx, `
	INSERT INTO task_tags (task_id, tag_id)
	SELECT $1, unnest($2::int[])
	ON CONFLICT DO NOTHING
	`, taskID, tagIDs)
	return err
}

// Delete - подзадачи, история и связи с тегами удаляются каскадом
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	query := `DELETE FROM task WHERE id = $1 AND owner_id = $2`
	tag, err := querier(ctx, r.db).Exec(ctx, query, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List - список задач с фильтрацией
func (r *TaskRepository) List(ctx context.Context, ownerID int, filter entity.TaskFilter) ([]entity.Task, error) {
	where, args := buildTaskWhere(ownerID, filter)

	query := `SELECT ` + taskColumns + ` FROM task t WHERE ` + where + ` ORDER BY ` + taskOrderBy(filter.Ordering)

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// Stats считает производные счётчики по тому же фильтру, что и List.
// now передаётся явно, чтобы просрочка совпадала с entity.Task.IsOverdue.
func (r *TaskRepository) Stats(ctx context.Context, ownerID int, filter entity.TaskFilter, now time.Time) (entity.TaskStats, error) {
	where, args := buildTaskWhere(ownerID, filter)
	args = append(args, now)

	query := `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE t.completed),
		COUNT(*) FILTER (WHERE NOT t.completed AND t.due_date < $` + strconv.Itoa(len(args)) + `),
		COUNT(*) FILTER (WHERE t.priority = 'high')
	FROM task t
	WHERE ` + where

	var total, completed, overdue, high int
	err := querier(ctx, r.db).QueryRow(ctx, query, args...).Scan(&total, &completed, &overdue, &high)
	if err != nil {
		return entity.TaskStats{}, err
	}

	return entity.NewTaskStats(total, completed, overdue, high), nil
}

func buildTaskWhere(ownerID int, f entity.TaskFilter) (string, []any) {
	conds := []string{"t.owner_id = $1"}
	args := []any{ownerID}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.Completed != nil {
		add("t.completed = ?", *f.Completed)
	}
	if f.Priority != "" {
		add("t.priority = ?", f.Priority)
	}
	if f.CategoryID != nil {
		add("t.category_id = ?", *f.CategoryID)
	}
	if f.ListID != nil {
		add("t.list_id = ?", *f.ListID)
	}
	if f.TagID != nil {
		add("EXISTS (SELECT 1 FROM task_tags tt WHERE tt.task_id = t.id AND tt.tag_id = ?)", *f.TagID)
	}
	if f.Search != "" {
		add("(t.title ILIKE ? OR t.description ILIKE ?)", "%"+f.Search+"%")
	}
	if f.DueFrom != nil {
		add("t.due_date >= ?", *f.DueFrom)
	}
	if f.DueBefore != nil {
		add("t.due_date < ?", *f.DueBefore)
	}

	return strings.Join(conds, " AND "), args
}

func taskOrderBy(ordering string) string {
	direction := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(ordering, "-")
	}

	column, ok := taskOrderings[field]
	if !ok {
		return "t.created_at DESC, t.id DESC"
	}
	return column + " " + direction + " NULLS LAST, t.id " + direction
}
