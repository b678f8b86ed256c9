package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TierHigh   = "High"
	TierMedium = "Medium"
)

const (
	VerdictPending   = "pending"
	VerdictCorrect   = "correct"
	VerdictIncorrect = "incorrect"
)

// BrainScore is one prediction made when a submission was created from a
// recommendation. It stays pending until observed analytics arrive.
type BrainScore struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID         uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	RecommendationID uuid.UUID `gorm:"type:uuid;not null;index" json:"recommendation_id"`
	SubmissionID     uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`

	PredictedTier  string `gorm:"column:predicted_tier;not null" json:"predicted_tier"` // High|Medium
	PredictedTitle string `gorm:"column:predicted_title;not null" json:"predicted_title"`

	ActualViews *int64 `gorm:"column:actual_views" json:"actual_views,omitempty"`
	ActualLikes *int64 `gorm:"column:actual_likes" json:"actual_likes,omitempty"`

	PerformanceVerdict string     `gorm:"column:performance_verdict;not null;index" json:"performance_verdict"` // pending|correct|incorrect
	VerdictReasoning   string     `gorm:"column:verdict_reasoning;type:text" json:"verdict_reasoning"`
	ScoredAt           *time.Time `gorm:"column:scored_at" json:"scored_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BrainScore) TableName() string { return "brain_score" }
