package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionIntake    SubmissionStatus = "intake"
	SubmissionEditing   SubmissionStatus = "editing"
	SubmissionDesign    SubmissionStatus = "design"
	SubmissionScheduled SubmissionStatus = "scheduled"
	SubmissionPublished SubmissionStatus = "published"
)

// submissionTransitions is the table of legal status moves. The pipeline
// is forward-only except the explicit unschedule edge.
var submissionTransitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionIntake:    {SubmissionEditing},
	SubmissionEditing:   {SubmissionDesign},
	SubmissionDesign:    {SubmissionScheduled},
	SubmissionScheduled: {SubmissionPublished, SubmissionEditing},
	SubmissionPublished: {},
}

func (s SubmissionStatus) Valid() bool {
	_, ok := submissionTransitions[s]
	return ok
}

func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, t := range submissionTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Submission struct {
	ID       uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	Title    string           `gorm:"column:title;not null" json:"title"`
	Kind     string           `gorm:"column:kind;not null;index" json:"kind"` // video|podcast|short
	Status   SubmissionStatus `gorm:"column:status;not null;index" json:"status"`

	ReleaseDate *time.Time `gorm:"column:release_date;index" json:"release_date,omitempty"`

	IdeaID            *uuid.UUID `gorm:"type:uuid;column:idea_id;index" json:"idea_id,omitempty"`
	StrategySessionID *uuid.UUID `gorm:"type:uuid;column:strategy_session_id;index" json:"strategy_session_id,omitempty"`
	RecommendationID  *uuid.UUID `gorm:"type:uuid;column:recommendation_id;index" json:"recommendation_id,omitempty"`

	Script          string `gorm:"column:script;type:text" json:"script"`
	PlatformVideoID string `gorm:"column:platform_video_id;index" json:"platform_video_id,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now();index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Submission) TableName() string { return "submission" }
