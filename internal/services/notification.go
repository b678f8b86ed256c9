package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type NotificationService interface {
	GetNotifications(ctx context.Context, clientID uuid.UUID, unreadOnly bool, limit int) ([]*types.Notification, error)
	MarkRead(ctx context.Context, clientID, notificationID uuid.UUID) error
}

type notificationService struct {
	log  *logger.Logger
	repo repos.NotificationRepo
}

func NewNotificationService(baseLog *logger.Logger, repo repos.NotificationRepo) NotificationService {
	return &notificationService{
		log:  baseLog.With("service", "NotificationService"),
		repo: repo,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, clientID uuid.UUID, unreadOnly bool, limit int) ([]*types.Notification, error) {
	return s.repo.ListByClient(ctx, nil, clientID, unreadOnly, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, clientID, notificationID uuid.UUID) error {
	rows, err := s.repo.MarkRead(ctx, nil, clientID, notificationID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
