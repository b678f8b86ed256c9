package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

// AnalyticsSummary aggregates a client's trailing window.
type AnalyticsSummary struct {
	TotalDownloads    int64 `json:"total_downloads"`
	TotalViews        int64 `json:"total_views"`
	EpisodesPublished int64 `json:"episodes_published"`
}

type AnalyticsRepo interface {
	LatestBySubmissionID(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID) (*types.AnalyticsSnapshot, error)
	SummarizeWindow(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, since time.Time) (*AnalyticsSummary, error)
}

type analyticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) AnalyticsRepo {
	return &analyticsRepo{
		db:  db,
		log: baseLog.With("repo", "AnalyticsRepo"),
	}
}

func (r *analyticsRepo) LatestBySubmissionID(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID) (*types.AnalyticsSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil || submissionID == uuid.Nil {
		return nil, nil
	}
	var snap types.AnalyticsSnapshot
	err := transaction.WithContext(ctx).
		Where("client_id = ? AND submission_id = ?", clientID, submissionID).
		Order("captured_at DESC").
		Limit(1).
		Find(&snap).Error
	if err != nil {
		return nil, err
	}
	if snap.ID == uuid.Nil {
		return nil, nil
	}
	return &snap, nil
}

func (r *analyticsRepo) SummarizeWindow(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, since time.Time) (*AnalyticsSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row AnalyticsSummary
	err := transaction.WithContext(ctx).
		Model(&types.AnalyticsSnapshot{}).
		Select(
			"coalesce(sum(downloads),0) as total_downloads, " +
				"coalesce(sum(views),0) as total_views, " +
				"count(distinct submission_id) as episodes_published",
		).
		Where("client_id = ? AND captured_at >= ?", clientID, since).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
