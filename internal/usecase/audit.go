package usecase

import (
	"context"
	"encoding/json"
	"log"
	"reflect"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
)

// RabbitMQPublisher интерфейс для публикации в RabbitMQ
type RabbitMQPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

// Clock - текущее время в часовом поясе приложения
type Clock func() time.Time

func NewClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// auditor собирает сообщение аудита и отправляет его асинхронно.
// Ошибка публикации не влияет на результат операции.
type auditor struct {
	publisher RabbitMQPublisher
	clock     Clock
}

func (a auditor) send(action entity.ActionType, entityType string, userID, entityID int, oldValue, newValue any) {
	if a.publisher == nil {
		return
	}

	msg := entity.NewAuditMessage(action, entityType, userID, entityID, a.clock())
	msg.OldValues = snapshot(oldValue)
	msg.NewValues = snapshot(newValue)
	if msg.OldValues != nil && msg.NewValues != nil {
		msg.Changes = diff(msg.OldValues, msg.NewValues)
	}

	go func() {
		if err := a.publisher.PublishAuditMessage(context.Background(), msg); err != nil {
			log.Printf("❌ Ошибка отправки аудита в RabbitMQ: %v", err)
		}
	}()
}

// snapshot - JSON-представление сущности в виде map
func snapshot(v any) map[string]any {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	delete(out, "updated_at")
	return out
}

func diff(oldValues, newValues map[string]any) map[string]any {
	changes := make(map[string]any)
	for key, newValue := range newValues {
		oldValue := oldValues[key]
		if !reflect.DeepEqual(oldValue, newValue) {
			changes[key] = map[string]any{"old": oldValue, "new": newValue}
		}
	}
	return changes
}
