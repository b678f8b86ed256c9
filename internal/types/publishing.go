package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskDraft     TaskStatus = "draft"
	TaskScheduled TaskStatus = "scheduled"
	TaskPosting   TaskStatus = "posting"
	TaskPosted    TaskStatus = "posted"
	TaskFailed    TaskStatus = "failed"
)

// posted and failed are terminal; the dispatcher owns the
// scheduled→posting→posted/failed edges, clients own the rest.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskDraft:     {TaskScheduled},
	TaskScheduled: {TaskPosting, TaskDraft},
	TaskPosting:   {TaskPosted, TaskFailed},
	TaskPosted:    {},
	TaskFailed:    {},
}

func (s TaskStatus) Valid() bool {
	_, ok := taskTransitions[s]
	return ok
}

func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, t := range taskTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s TaskStatus) Terminal() bool {
	return len(taskTransitions[s]) == 0 && s.Valid()
}

type PublishingTask struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	SubmissionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"submission_id"`
	Platform     string     `gorm:"column:platform;not null;index" json:"platform"`
	Status       TaskStatus `gorm:"column:status;not null;index" json:"status"`

	ScheduledAt    *time.Time `gorm:"column:scheduled_at;index" json:"scheduled_at,omitempty"`
	PostedAt       *time.Time `gorm:"column:posted_at" json:"posted_at,omitempty"`
	PlatformPostID string     `gorm:"column:platform_post_id" json:"platform_post_id,omitempty"`
	ErrorMessage   string     `gorm:"column:error_message;type:text" json:"error_message,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PublishingTask) TableName() string { return "publishing_task" }

type PlatformConnection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_platform_connection_client_platform,priority:1" json:"client_id"`
	Platform  string    `gorm:"column:platform;not null;uniqueIndex:idx_platform_connection_client_platform,priority:2" json:"platform"`
	Connected bool      `gorm:"column:connected;not null;default:false" json:"connected"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PlatformConnection) TableName() string { return "platform_connection" }
