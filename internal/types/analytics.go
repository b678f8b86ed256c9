package types

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsSnapshot is the observed-performance read model. Rows are
// written by the external analytics ingester; this core only reads them.
type AnalyticsSnapshot struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`

	Views     int64 `gorm:"column:views;not null;default:0" json:"views"`
	Likes     int64 `gorm:"column:likes;not null;default:0" json:"likes"`
	Downloads int64 `gorm:"column:downloads;not null;default:0" json:"downloads"`

	CapturedAt time.Time `gorm:"column:captured_at;not null;index" json:"captured_at"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (AnalyticsSnapshot) TableName() string { return "analytics_snapshot" }
