package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BrainSnapshot is an append-only audit record of the inputs behind one
// proposal batch. Rows are never updated or deleted.
type BrainSnapshot struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Inputs   datatypes.JSON `gorm:"column:inputs;type:jsonb" json:"inputs"`
	Patterns datatypes.JSON `gorm:"column:patterns;type:jsonb" json:"patterns"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (BrainSnapshot) TableName() string { return "fvs_brain_snapshot" }
