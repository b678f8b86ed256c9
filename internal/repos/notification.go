package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notifs []*types.Notification) ([]*types.Notification, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, unreadOnly bool, limit int) ([]*types.Notification, error)
	MarkRead(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (int64, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{
		db:  db,
		log: baseLog.With("repo", "NotificationRepo"),
	}
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notifs []*types.Notification) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(notifs) == 0 {
		return []*types.Notification{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&notifs).Error; err != nil {
		return nil, err
	}
	return notifs, nil
}

func (r *notificationRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, unreadOnly bool, limit int) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Notification
	q := transaction.WithContext(ctx).Where("client_id = ?", clientID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
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

func (r *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	res := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("id = ? AND client_id = ? AND read_at IS NULL", id, clientID).
		Updates(map[string]interface{}{
			"read_at":    now,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

type ActivityLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.ActivityLog) ([]*types.ActivityLog, error)
}

type activityLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityLogRepo(db *gorm.DB, baseLog *logger.Logger) ActivityLogRepo {
	return &activityLogRepo{
		db:  db,
		log: baseLog.With("repo", "ActivityLogRepo"),
	}
}

func (r *activityLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.ActivityLog) ([]*types.ActivityLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(entries) == 0 {
		return []*types.ActivityLog{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
