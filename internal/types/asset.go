package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AssetKindVideo     = "video"
	AssetKindThumbnail = "thumbnail"
)

type Asset struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index:idx_asset_submission" json:"submission_id"`
	Kind         string    `gorm:"column:kind;not null;index" json:"kind"` // video|thumbnail
	StorageKey   string    `gorm:"column:storage_key;not null;index" json:"storage_key"`
	URL          string    `gorm:"column:url" json:"url,omitempty"`

	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Asset) TableName() string { return "asset" }
