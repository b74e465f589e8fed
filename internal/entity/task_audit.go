package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionCreate     ActionType = "Create"
	ActionUpdate     ActionType = "Update"
	ActionDelete     ActionType = "Delete"
	ActionComplete   ActionType = "Complete"
	ActionUncomplete ActionType = "Uncomplete"
)

const (
	EntityTask     = "task"
	EntitySubtask  = "subtask"
	EntityCategory = "category"
	EntityTag      = "tag"
	EntityList     = "task_list"
)

type TaskAudit struct {
	ID         int        `json:"id"`
	EventID    uuid.UUID  `json:"event_id"`
	UserID     int        `json:"user_id"`
	Action     ActionType `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   int        `json:"entity_id"`
	OldValues  *string    `json:"old_values"`
	NewValues  *string    `json:"new_values"`
	Changes    *string    `json:"changes"`
	ChangesAt  time.Time  `json:"changed_at"`
}

type AuditMessage struct {
	ID         uuid.UUID      `json:"id"`
	UserID     int            `json:"user_id"`
	Action     ActionType     `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   int            `json:"entity_id"`
	OldValues  map[string]any `json:"old_values"`
	NewValues  map[string]any `json:"new_values"`
	Changes    map[string]any `json:"changes"`
	Timestamp  time.Time      `json:"timestamp"`
}

func NewAuditMessage(action ActionType, entityType string, userID, entityID int, now time.Time) *AuditMessage {
	return &AuditMessage{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  now,
	}
}
