package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

// ClientAccuracy is one leaderboard row aggregated from brain scores.
type ClientAccuracy struct {
	ClientID uuid.UUID `json:"client_id"`
	Total    int64     `json:"total"`
	Scored   int64     `json:"scored"`
	Correct  int64     `json:"correct"`
}

type BrainScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, scores []*types.BrainScore) ([]*types.BrainScore, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.BrainScore, error)
	ListPending(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.BrainScore, error)
	ListScoredSince(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, since time.Time) ([]*types.BrainScore, error)
	AccuracyByClient(ctx context.Context, tx *gorm.DB, limit int) ([]ClientAccuracy, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
}

type brainScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBrainScoreRepo(db *gorm.DB, baseLog *logger.Logger) BrainScoreRepo {
	return &brainScoreRepo{
		db:  db,
		log: baseLog.With("repo", "BrainScoreRepo"),
	}
}

func (r *brainScoreRepo) Create(ctx context.Context, tx *gorm.DB, scores []*types.BrainScore) ([]*types.BrainScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(scores) == 0 {
		return []*types.BrainScore{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *brainScoreRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.BrainScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.BrainScore
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

func (r *brainScoreRepo) ListPending(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.BrainScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.BrainScore
	q := transaction.WithContext(ctx).Where("performance_verdict = ?", types.VerdictPending)
	if clientID != uuid.Nil {
		q = q.Where("client_id = ?", clientID)
	}
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *brainScoreRepo) ListScoredSince(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, since time.Time) ([]*types.BrainScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.BrainScore
	err := transaction.WithContext(ctx).
		Where("client_id = ? AND performance_verdict <> ? AND scored_at >= ?", clientID, types.VerdictPending, since).
		Order("scored_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *brainScoreRepo) AccuracyByClient(ctx context.Context, tx *gorm.DB, limit int) ([]ClientAccuracy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []ClientAccuracy
	q := transaction.WithContext(ctx).
		Model(&types.BrainScore{}).
		Select(
			"client_id, count(*) as total, "+
				"sum(case when performance_verdict <> ? then 1 else 0 end) as scored, "+
				"sum(case when performance_verdict = ? then 1 else 0 end) as correct",
			types.VerdictPending, types.VerdictCorrect,
		).
		Group("client_id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *brainScoreRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	res := transaction.WithContext(ctx).
		Model(&types.BrainScore{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}
