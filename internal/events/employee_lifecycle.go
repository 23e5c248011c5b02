package events

import "time"

const EmployeeLifecycleTopic = "employee.lifecycle.v1"

type EmployeeEventType string

const (
	EmployeeEventCreate EmployeeEventType = "CREATE"
	EmployeeEventUpdate EmployeeEventType = "UPDATE"
	EmployeeEventDelete EmployeeEventType = "DELETE"
)

// EmployeeSnapshot is the full entity state at the moment of the triggering
// operation: post-write for create and update, pre-delete for delete.
type EmployeeSnapshot struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Birthday string   `json:"birthday"`
	Hobbies  []string `json:"hobbies"`
}

type EmployeeEvent struct {
	EventType  EmployeeEventType `json:"event_type"`
	RequestID  string            `json:"request_id,omitempty"`
	Employee   EmployeeSnapshot  `json:"employee"`
	OccurredAt time.Time         `json:"occurred_at"`
}
