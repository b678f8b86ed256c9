package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recommendation is a ranked content suggestion produced by a trend scan
// and consumed by submission creation.
type Recommendation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Tier      string    `gorm:"column:tier;not null;index" json:"tier"` // High|Medium
	Rationale string    `gorm:"column:rationale;type:text" json:"rationale"`
	Rank      int       `gorm:"column:rank;not null;default:0" json:"rank"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Recommendation) TableName() string { return "recommendation" }

// TrendSignal is one aggregated competitor or topic observation written
// by a scan stage. Rows from completed stages survive a later stage
// failure.
type TrendSignal struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Source   string    `gorm:"column:source;not null;index" json:"source"` // competitor|trending
	Topic    string    `gorm:"column:topic;not null" json:"topic"`
	Label    string    `gorm:"column:label" json:"label"`
	Score    float64   `gorm:"column:score;not null;default:0" json:"score"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (TrendSignal) TableName() string { return "trend_signal" }
