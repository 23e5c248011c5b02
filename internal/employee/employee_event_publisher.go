package employee

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/SchlottiP/employee-test/internal/events"
	"github.com/SchlottiP/employee-test/internal/messaging/kafka"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=employee_event_publisher.go -destination=mock/employee_event_publisher_mock.go -package=mock
type EventPublisher interface {
	PublishEmployeeEvent(ctx context.Context, event events.EmployeeEvent) error
}

// TxEventPublisher is the transactional variant: the event is recorded inside
// the caller's store transaction, so the record and its event commit or roll
// back together.
type TxEventPublisher interface {
	EventPublisher
	PublishEmployeeEventTx(ctx context.Context, tx *sql.Tx, event events.EmployeeEvent) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) PublishEmployeeEvent(context.Context, events.EmployeeEvent) error {
	return nil
}

// kafkaEventPublisher writes straight to the topic. With an async writer
// this is fire-and-forget end to end: the call returns once the message is
// queued and delivery failures only ever reach the writer's completion log.
type kafkaEventPublisher struct {
	writer *kafkago.Writer
	topic  string
}

func NewKafkaEventPublisher(writer *kafkago.Writer, topic string) EventPublisher {
	if topic == "" {
		topic = events.EmployeeLifecycleTopic
	}
	return &kafkaEventPublisher{writer: writer, topic: topic}
}

func (p *kafkaEventPublisher) PublishEmployeeEvent(
	ctx context.Context,
	event events.EmployeeEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: p.topic,
		Key:   []byte(event.Employee.ID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
}

// outboxEventPublisher records the event as a pending outbox row instead of
// publishing directly; the worker binary drains the table. The row is
// enqueued through PublishEmployeeEventTx inside the same transaction as the
// entity write, which is what makes delivery at-least-once. Selected with
// EVENT_DELIVERY=outbox.
type outboxEventPublisher struct {
	outbox kafka.OutboxRepository
	topic  string
}

func NewOutboxEventPublisher(outbox kafka.OutboxRepository, topic string) EventPublisher {
	if topic == "" {
		topic = events.EmployeeLifecycleTopic
	}
	return &outboxEventPublisher{outbox: outbox, topic: topic}
}

func (p *outboxEventPublisher) PublishEmployeeEvent(
	ctx context.Context,
	event events.EmployeeEvent,
) error {
	return p.enqueue(ctx, p.outbox, event)
}

func (p *outboxEventPublisher) PublishEmployeeEventTx(
	ctx context.Context,
	tx *sql.Tx,
	event events.EmployeeEvent,
) error {
	return p.enqueue(ctx, p.outbox.WithTx(tx), event)
}

// Retry scheduling belongs to the worker, so the row carries no retry state
// at enqueue time.
func (p *outboxEventPublisher) enqueue(
	ctx context.Context,
	outbox kafka.OutboxRepository,
	event events.EmployeeEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "employee",
		AggregateID:   event.Employee.ID,
		EventType:     string(event.EventType),
		Topic:         p.topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
