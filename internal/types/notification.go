package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is the durable channel behind the SSE fan-out; SSE events
// are fire-and-forget, these rows are not.
type Notification struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Type     string    `gorm:"column:type;not null;index" json:"type"`
	Title    string    `gorm:"column:title;not null" json:"title"`
	Message  string    `gorm:"column:message;type:text" json:"message"`
	Link     string    `gorm:"column:link" json:"link,omitempty"`

	ReadAt *time.Time `gorm:"column:read_at;index" json:"read_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Notification) TableName() string { return "notification" }

type ActivityLog struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Action   string         `gorm:"column:action;not null;index" json:"action"`
	Detail   datatypes.JSON `gorm:"column:detail;type:jsonb" json:"detail,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_log" }
