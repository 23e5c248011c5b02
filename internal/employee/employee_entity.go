package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Employee struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email     string         `gorm:"uniqueIndex:uq_employee_email;not null"`
	FullName  string         `gorm:"not null"`
	Birthday  time.Time      `gorm:"type:date;not null"`
	Hobbies   pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
