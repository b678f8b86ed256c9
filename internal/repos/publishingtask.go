package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type PublishingTaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.PublishingTask) ([]*types.PublishingTask, error)
	GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.PublishingTask, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.PublishingTask, error)
	// ListDue returns scheduled tasks whose time has come, plus posting
	// tasks untouched since staleBefore; those were claimed by a worker
	// that died mid-publish and must be retried.
	ListDue(ctx context.Context, tx *gorm.DB, now, staleBefore time.Time, limit int) ([]*types.PublishingTask, error)
	// ClaimForPosting flips a single task scheduled→posting with a
	// status-filtered update; the returned bool reports whether this
	// caller won the claim. A posting row untouched since staleBefore
	// can be re-claimed.
	ClaimForPosting(ctx context.Context, tx *gorm.DB, id uuid.UUID, staleBefore time.Time) (bool, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
}

type publishingTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPublishingTaskRepo(db *gorm.DB, baseLog *logger.Logger) PublishingTaskRepo {
	return &publishingTaskRepo{
		db:  db,
		log: baseLog.With("repo", "PublishingTaskRepo"),
	}
}

func (r *publishingTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.PublishingTask) ([]*types.PublishingTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tasks) == 0 {
		return []*types.PublishingTask{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *publishingTaskRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.PublishingTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var task types.PublishingTask
	err := transaction.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		Limit(1).
		Find(&task).Error
	if err != nil {
		return nil, err
	}
	if task.ID == uuid.Nil {
		return nil, nil
	}
	return &task, nil
}

func (r *publishingTaskRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.PublishingTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.PublishingTask
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

func (r *publishingTaskRepo) ListDue(ctx context.Context, tx *gorm.DB, now, staleBefore time.Time, limit int) ([]*types.PublishingTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.PublishingTask
	q := transaction.WithContext(ctx).
		Where(
			"(status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?) OR (status = ? AND updated_at < ?)",
			types.TaskScheduled, now, types.TaskPosting, staleBefore,
		).
		Order("scheduled_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *publishingTaskRepo) ClaimForPosting(ctx context.Context, tx *gorm.DB, id uuid.UUID, staleBefore time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := transaction.WithContext(ctx).
		Model(&types.PublishingTask{}).
		Where("id = ? AND (status = ? OR (status = ? AND updated_at < ?))",
			id, types.TaskScheduled, types.TaskPosting, staleBefore).
		Updates(map[string]interface{}{
			"status":     types.TaskPosting,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *publishingTaskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
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
		Model(&types.PublishingTask{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}
