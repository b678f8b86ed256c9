package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type RecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error)
	GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.Recommendation, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.Recommendation, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return &recommendationRepo{
		db:  db,
		log: baseLog.With("repo", "RecommendationRepo"),
	}
}

func (r *recommendationRepo) Create(ctx context.Context, tx *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(recs) == 0 {
		return []*types.Recommendation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var rec types.Recommendation
	err := transaction.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		Limit(1).
		Find(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func (r *recommendationRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Recommendation
	q := transaction.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("rank ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type TrendSignalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, signals []*types.TrendSignal) ([]*types.TrendSignal, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, source string, limit int) ([]*types.TrendSignal, error)
}

type trendSignalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrendSignalRepo(db *gorm.DB, baseLog *logger.Logger) TrendSignalRepo {
	return &trendSignalRepo{
		db:  db,
		log: baseLog.With("repo", "TrendSignalRepo"),
	}
}

func (r *trendSignalRepo) Create(ctx context.Context, tx *gorm.DB, signals []*types.TrendSignal) ([]*types.TrendSignal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(signals) == 0 {
		return []*types.TrendSignal{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&signals).Error; err != nil {
		return nil, err
	}
	return signals, nil
}

func (r *trendSignalRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, source string, limit int) ([]*types.TrendSignal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.TrendSignal
	q := transaction.WithContext(ctx).Where("client_id = ?", clientID)
	if source != "" {
		q = q.Where("source = ?", source)
	}
	q = q.Order("score DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
