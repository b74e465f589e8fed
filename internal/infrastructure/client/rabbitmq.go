package client

import (
	"context"
	"encoding/json"
	"log"

	"github.com/St1cky1/taskmanager/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewRabbitMQClient(url, queueName string) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	queue, err := DeclareAuditQueue(channel, queueName)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		queue:   queue,
	}, nil
}

// DeclareAuditQueue объявляет durable очередь аудита. Используется и
// издателем, и консьюмером, чтобы параметры очереди совпадали.
func DeclareAuditQueue(channel *amqp.Channel, name string) (amqp.Queue, error) {
	return channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

// QueueName возвращает имя очереди
func (c *RabbitMQClient) QueueName() string {
	return c.queue.Name
}

func (c *RabbitMQClient) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	err = c.channel.PublishWithContext(
		ctx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    message.ID.String(),
			Timestamp:    message.Timestamp,
			Body:         body,
			DeliveryMode: amqp.Persistent, // Сообщения сохраняются на диск
		},
	)
	if err != nil {
		return err
	}

	log.Printf("Отправлено сообщение в RabbitMQ: %s %s ID=%d", message.Action, message.EntityType, message.EntityID)
	return nil
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// LogPublisher пишет сообщения аудита в лог, когда RabbitMQ выключен
type LogPublisher struct{}

func (LogPublisher) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	log.Printf("Аудит (RabbitMQ выключен): %s %s ID=%d пользователь=%d",
		message.Action, message.EntityType, message.EntityID, message.UserID)
	return nil
}
