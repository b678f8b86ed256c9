package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type PlatformConnectionRepo interface {
	Get(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, platform string) (*types.PlatformConnection, error)
	Upsert(ctx context.Context, tx *gorm.DB, conn *types.PlatformConnection) error
}

type platformConnectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlatformConnectionRepo(db *gorm.DB, baseLog *logger.Logger) PlatformConnectionRepo {
	return &platformConnectionRepo{
		db:  db,
		log: baseLog.With("repo", "PlatformConnectionRepo"),
	}
}

func (r *platformConnectionRepo) Get(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, platform string) (*types.PlatformConnection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil || platform == "" {
		return nil, nil
	}
	var conn types.PlatformConnection
	err := transaction.WithContext(ctx).
		Where("client_id = ? AND platform = ?", clientID, platform).
		Limit(1).
		Find(&conn).Error
	if err != nil {
		return nil, err
	}
	if conn.ID == uuid.Nil {
		return nil, nil
	}
	return &conn, nil
}

func (r *platformConnectionRepo) Upsert(ctx context.Context, tx *gorm.DB, conn *types.PlatformConnection) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if conn == nil {
		return nil
	}
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}
	conn.UpdatedAt = time.Now()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{"connected", "updated_at"}),
		}).
		Create(conn).Error
}
