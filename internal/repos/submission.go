package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type SubmissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subs []*types.Submission) ([]*types.Submission, error)
	GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.Submission, error)
	ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, statuses []types.SubmissionStatus, limit int) ([]*types.Submission, error)
	RecentTopics(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]string, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (map[types.SubmissionStatus]int64, error)
	LatestRelease(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*time.Time, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID, updates map[string]interface{}) (int64, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{
		db:  db,
		log: baseLog.With("repo", "SubmissionRepo"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, tx *gorm.DB, subs []*types.Submission) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(subs) == 0 {
		return []*types.Submission{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var sub types.Submission
	err := transaction.WithContext(ctx).
		Where("id = ? AND client_id = ?", id, clientID).
		Limit(1).
		Find(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.ID == uuid.Nil {
		return nil, nil
	}
	return &sub, nil
}

func (r *submissionRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, statuses []types.SubmissionStatus, limit int) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Submission
	q := transaction.WithContext(ctx).Where("client_id = ?", clientID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
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

func (r *submissionRepo) RecentTopics(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]string, error) {
	subs, err := r.ListByClient(ctx, tx, clientID, []types.SubmissionStatus{types.SubmissionPublished, types.SubmissionScheduled}, limit)
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(subs))
	for _, s := range subs {
		if s != nil && s.Title != "" {
			topics = append(topics, s.Title)
		}
	}
	return topics, nil
}

func (r *submissionRepo) CountByStatus(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (map[types.SubmissionStatus]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		Status types.SubmissionStatus
		N      int64
	}
	err := transaction.WithContext(ctx).
		Model(&types.Submission{}).
		Select("status, count(*) as n").
		Where("client_id = ?", clientID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[types.SubmissionStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *submissionRepo) LatestRelease(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*time.Time, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var sub types.Submission
	err := transaction.WithContext(ctx).
		Where("client_id = ? AND status IN ?", clientID, []types.SubmissionStatus{types.SubmissionScheduled, types.SubmissionPublished}).
		Order("updated_at DESC").
		Limit(1).
		Find(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.ID == uuid.Nil {
		return nil, nil
	}
	t := sub.UpdatedAt
	return &t, nil
}

func (r *submissionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID, updates map[string]interface{}) (int64, error) {
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
		Model(&types.Submission{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Updates(updates)
	return res.RowsAffected, res.Error
}
