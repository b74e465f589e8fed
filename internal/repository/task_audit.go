package repository

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskAuditRepository struct {
	db *pgxpool.Pool
}

func NewTaskAuditRepository(db *pgxpool.Pool) *TaskAuditRepository {
	return &TaskAuditRepository{
		db: db,
	}
}

// Create - повторная доставка того же сообщения не создаёт дубль (event_id уникален)
func (r *TaskAuditRepository) Create(ctx context.Context, audit *entity.TaskAudit) error {
	query := `
	INSERT INTO task_audit (event_id, user_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (event_id) DO NOTHING
	`

	_, err := querier(ctx, r.db).Exec(
		ctx,
		query,
		audit.EventID,
		audit.UserID,
		audit.Action,
		audit.EntityType,
		audit.EntityID,
		audit.OldValues,
		audit.NewValues,
		audit.Changes,
		audit.ChangesAt,
	)
	return err
}

func (r *TaskAuditRepository) ListByEntity(ctx context.Context, entityType string, entityID int) ([]entity.TaskAudit, error) {
	query := `
	SELECT id, event_id, user_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at
	FROM task_audit
	WHERE entity_type = $1 AND entity_id = $2
	ORDER BY changed_at DESC, id DESC
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	audits := make([]entity.TaskAudit, 0)
	for rows.Next() {
		var audit entity.TaskAudit
		err := rows.Scan(
			&audit.ID,
			&audit.EventID,
			&audit.UserID,
			&audit.Action,
			&audit.EntityType,
			&audit.EntityID,
			&audit.OldValues,
			&audit.NewValues,
			&audit.Changes,
			&audit.ChangesAt,
		)
		if err != nil {
			return nil, err
		}
		audits = append(audits, audit)
	}
	return audits, rows.Err()
}
