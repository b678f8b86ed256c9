package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdeaStatus string

const (
	IdeaProposed   IdeaStatus = "proposed"
	IdeaApproved   IdeaStatus = "approved"
	IdeaRejected   IdeaStatus = "rejected"
	IdeaInProgress IdeaStatus = "in_progress"
	IdeaCompleted  IdeaStatus = "completed"
)

// One-way lifecycle; callers needing to reverse a decision pass an
// explicit override at the mutation boundary.
var ideaTransitions = map[IdeaStatus][]IdeaStatus{
	IdeaProposed:   {IdeaApproved, IdeaRejected},
	IdeaApproved:   {IdeaInProgress},
	IdeaRejected:   {},
	IdeaInProgress: {IdeaCompleted},
	IdeaCompleted:  {},
}

func (s IdeaStatus) Valid() bool {
	_, ok := ideaTransitions[s]
	return ok
}

func (s IdeaStatus) CanTransitionTo(next IdeaStatus) bool {
	for _, t := range ideaTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type FvsIdea struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	Topic           string     `gorm:"column:topic;not null" json:"topic"`
	Hypothesis      string     `gorm:"column:hypothesis;type:text" json:"hypothesis"`
	SourceSignal    string     `gorm:"column:source_signal;index" json:"source_signal"`
	TargetFormat    string     `gorm:"column:target_format;index" json:"target_format"`
	ConvictionScore float64    `gorm:"column:conviction_score;not null;default:0" json:"conviction_score"`
	Status          IdeaStatus `gorm:"column:status;not null;index" json:"status"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FvsIdea) TableName() string { return "fvs_idea" }
