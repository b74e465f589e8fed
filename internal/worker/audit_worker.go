package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/infrastructure/client"
	"github.com/St1cky1/taskmanager/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 5 * time.Second

// errMalformed - сообщение нельзя разобрать, повторять бессмысленно
var errMalformed = errors.New("malformed audit message")

// AuditWorker читает очередь аудита и сохраняет записи в task_audit.
// При обрыве соединения переподключается.
type AuditWorker struct {
	url       string
	queue     string
	auditRepo repository.ITaskAuditRepository
}

func NewAuditWorker(url, queue string, auditRepo repository.ITaskAuditRepository) *AuditWorker {
	return &AuditWorker{
		url:       url,
		queue:     queue,
		auditRepo: auditRepo,
	}
}

func (w *AuditWorker) Start(ctx context.Context) {
	log.Println("🔄 Audit Worker: подключение к RabbitMQ...")

	for {
		err := w.consume(ctx)
		if ctx.Err() != nil {
			log.Println("🛑 Audit Worker остановлен")
			return
		}
		log.Printf("❌ Audit Worker ошибка: %v, переподключение через %s...", err, reconnectDelay)

		select {
		case <-ctx.Done():
			log.Println("🛑 Audit Worker остановлен")
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *AuditWorker) consume(ctx context.Context) error {
	// Отдельное соединение и канал для consumer'а
	conn, err := amqp.Dial(w.url)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("ошибка создания канала: %w", err)
	}
	defer channel.Close()

	if _, err := client.DeclareAuditQueue(channel, w.queue); err != nil {
		return fmt.Errorf("ошибка объявления очереди: %w", err)
	}

	msgs, err := channel.Consume(
		w.queue,        // queue
		"audit_worker", // consumer tag
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return fmt.Errorf("ошибка создания consumer: %w", err)
	}

	log.Println("✅ Audit Worker запущен. Ожидаем сообщения...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("канал сообщений закрыт")
			}
			w.processMessage(ctx, msg)
		}
	}
}

func (w *AuditWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	err := w.handle(ctx, msg.Body)
	switch {
	case err == nil:
		msg.Ack(false)
	case errors.Is(err, errMalformed):
		log.Printf("❌ %v: %s", err, msg.Body)
		msg.Nack(false, false) // Не возвращаем в очередь
	default:
		log.Printf("❌ Ошибка сохранения аудита: %v", err)
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
	}
}

// handle разбирает и сохраняет одно сообщение. Повторная доставка того же
// сообщения не создаёт дубликат: event_id уникален.
func (w *AuditWorker) handle(ctx context.Context, body []byte) error {
	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(body, &auditMsg); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	taskAudit, err := convertToTaskAudit(&auditMsg)
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	if err := w.auditRepo.Create(ctx, taskAudit); err != nil {
		return err
	}

	log.Printf("✅ Аудит сохранен: %s %s ID=%d", taskAudit.Action, taskAudit.EntityType, taskAudit.EntityID)
	return nil
}

func convertToTaskAudit(msg *entity.AuditMessage) (*entity.TaskAudit, error) {
	if msg.Action == "" || msg.EntityType == "" {
		return nil, errors.New("action and entity_type are required")
	}

	oldValues, err := jsonString(msg.OldValues)
	if err != nil {
		return nil, err
	}
	newValues, err := jsonString(msg.NewValues)
	if err != nil {
		return nil, err
	}
	changes, err := jsonString(msg.Changes)
	if err != nil {
		return nil, err
	}

	return &entity.TaskAudit{
		EventID:    msg.ID,
		UserID:     msg.UserID,
		Action:     msg.Action,
		EntityType: msg.EntityType,
		EntityID:   msg.EntityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Changes:    changes,
		ChangesAt:  msg.Timestamp,
	}, nil
}

// jsonString - nil для пустого значения
func jsonString(values map[string]any) (*string, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
