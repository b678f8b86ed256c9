package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
	"github.com/fvstudio/fvs-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

	var (
		conn *gorm.DB
		err  error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "fvs.db", log)
		log.Info("Connecting to sqlite...", "path", path)
		conn, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect to sqlite: %w", err)
		}
	default:
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "fvs", log)

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		log.Info("Connecting to Postgres...")
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to Postgres: %w", err)
		}
		if err := conn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
		}
	}

	return &Service{db: conn, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.Submission{},
		&types.Asset{},
		&types.FvsIdea{},
		&types.BrainScore{},
		&types.BrainSnapshot{},
		&types.PublishingTask{},
		&types.PlatformConnection{},
		&types.Recommendation{},
		&types.TrendSignal{},
		&types.AnalyticsSnapshot{},
		&types.Notification{},
		&types.ActivityLog{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
