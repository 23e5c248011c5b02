package employee_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SchlottiP/employee-test/internal/employee"
	"github.com/SchlottiP/employee-test/internal/events"
	"github.com/SchlottiP/employee-test/internal/messaging/kafka"
	kafkaMock "github.com/SchlottiP/employee-test/internal/messaging/kafka/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestOutboxEventPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	publisher := employee.NewOutboxEventPublisher(outbox, "")

	event := events.EmployeeEvent{
		EventType: events.EmployeeEventCreate,
		RequestID: "REQ-1",
		Employee: events.EmployeeSnapshot{
			ID:       uuid.New().String(),
			Email:    "a@x.com",
			FullName: "John Doe",
			Birthday: "1990-01-01",
			Hobbies:  []string{"Reading"},
		},
		OccurredAt: time.Now().UTC(),
	}

	outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, row kafka.OutboxEvent) error {
			assert.Equal(t, "employee", row.AggregateType)
			assert.Equal(t, event.Employee.ID, row.AggregateID)
			assert.Equal(t, string(events.EmployeeEventCreate), row.EventType)
			assert.Equal(t, events.EmployeeLifecycleTopic, row.Topic)
			assert.Equal(t, kafka.OutboxStatusPending, row.Status)
			assert.Equal(t, "REQ-1", row.RequestID)
			assert.True(t, row.NextRetryAt.IsZero(), "retry scheduling belongs to the worker")
			assert.NoError(t, kafka.ValidateOutboxEvent(row))

			var decoded events.EmployeeEvent
			assert.NoError(t, json.Unmarshal(row.Payload, &decoded))
			assert.Equal(t, event.Employee, decoded.Employee)
			return nil
		})

	err := publisher.PublishEmployeeEvent(context.Background(), event)
	assert.NoError(t, err)
}

func TestOutboxEventPublisherTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	publisher := employee.NewOutboxEventPublisher(outbox, "")

	txPublisher, ok := publisher.(employee.TxEventPublisher)
	assert.True(t, ok, "outbox publisher must enqueue transactionally")

	event := events.EmployeeEvent{
		EventType: events.EmployeeEventDelete,
		RequestID: "REQ-2",
		Employee: events.EmployeeSnapshot{
			ID:    uuid.New().String(),
			Email: "a@x.com",
		},
		OccurredAt: time.Now().UTC(),
	}

	outbox.EXPECT().WithTx(gomock.Nil()).Return(outbox)
	outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, row kafka.OutboxEvent) error {
			assert.Equal(t, event.Employee.ID, row.AggregateID)
			assert.Equal(t, string(events.EmployeeEventDelete), row.EventType)
			assert.Equal(t, kafka.OutboxStatusPending, row.Status)
			return nil
		})

	err := txPublisher.PublishEmployeeEventTx(context.Background(), nil, event)
	assert.NoError(t, err)
}

func TestNoopEventPublisher(t *testing.T) {
	publisher := employee.NewNoopEventPublisher()
	err := publisher.PublishEmployeeEvent(context.Background(), events.EmployeeEvent{})
	assert.NoError(t, err)
}
