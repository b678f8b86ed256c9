package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type AssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error)
	GetBySubmissionID(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID) ([]*types.Asset, error)
	HasKind(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID, kind string) (bool, error)
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{
		db:  db,
		log: baseLog.With("repo", "AssetRepo"),
	}
}

func (r *assetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(assets) == 0 {
		return []*types.Asset{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepo) GetBySubmissionID(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Asset
	if submissionID == uuid.Nil {
		return out, nil
	}
	err := transaction.WithContext(ctx).
		Where("client_id = ? AND submission_id = ?", clientID, submissionID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assetRepo) HasKind(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID, kind string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	err := transaction.WithContext(ctx).
		Model(&types.Asset{}).
		Where("client_id = ? AND submission_id = ? AND kind = ?", clientID, submissionID, kind).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
