package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type IdeaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ideas []*types.FvsIdea) ([]*types.FvsIdea, error)
	GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.FvsIdea, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, status types.IdeaStatus, limit int) ([]*types.FvsIdea, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID, updates map[string]interface{}) (int64, error)
}

type ideaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdeaRepo(db *gorm.DB, baseLog *logger.Logger) IdeaRepo {
	return &ideaRepo{
		db:  db,
		log: baseLog.With("repo", "IdeaRepo"),
	}
}

func (r *ideaRepo) Create(ctx context.Context, tx *gorm.DB, ideas []*types.FvsIdea) ([]*types.FvsIdea, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ideas) == 0 {
		return []*types.FvsIdea{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.FvsIdea, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var idea types.FvsIdea
	err := transaction.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		Limit(1).
		Find(&idea).Error
	if err != nil {
		return nil, err
	}
	if idea.ID == uuid.Nil {
		return nil, nil
	}
	return &idea, nil
}

func (r *ideaRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, status types.IdeaStatus, limit int) ([]*types.FvsIdea, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.FvsIdea
	q := transaction.WithContext(ctx).Where("client_id = ?", clientID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	q = q.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ideaRepo) UpdateFields(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID, updates map[string]interface{}) (int64, error) {
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
		Model(&types.FvsIdea{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Updates(updates)
	return res.RowsAffected, res.Error
}
