package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

// BrainSnapshotRepo is append-only; there is deliberately no update or
// delete surface.
type BrainSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snap *types.BrainSnapshot) (*types.BrainSnapshot, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.BrainSnapshot, error)
}

type brainSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBrainSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) BrainSnapshotRepo {
	return &brainSnapshotRepo{
		db:  db,
		log: baseLog.With("repo", "BrainSnapshotRepo"),
	}
}

func (r *brainSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snap *types.BrainSnapshot) (*types.BrainSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if snap == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(snap).Error; err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *brainSnapshotRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.BrainSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.BrainSnapshot
	q := transaction.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
