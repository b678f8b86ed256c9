package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/types"
)

// ConnectionService manages the per-platform connection gate consulted
// by the dispatcher. OAuth token exchange happens outside the core;
// only the connected flag lives here.
type ConnectionService interface {
	GetConnection(ctx context.Context, clientID uuid.UUID, platform string) (*types.PlatformConnection, error)
	SetConnection(ctx context.Context, clientID uuid.UUID, platform string, connected bool) (*types.PlatformConnection, error)
}

type connectionService struct {
	log  *logger.Logger
	repo repos.PlatformConnectionRepo
}

func NewConnectionService(baseLog *logger.Logger, repo repos.PlatformConnectionRepo) ConnectionService {
	return &connectionService{
		log:  baseLog.With("service", "ConnectionService"),
		repo: repo,
	}
}

func (s *connectionService) GetConnection(ctx context.Context, clientID uuid.UUID, platform string) (*types.PlatformConnection, error) {
	if platform == "" {
		return nil, fmt.Errorf("%w: missing platform", ErrInvalidArgument)
	}
	conn, err := s.repo.Get(ctx, nil, clientID, platform)
	if err != nil {
		return nil, fmt.Errorf("load connection: %w", err)
	}
	if conn == nil {
		// Absent row reads as a disconnected platform.
		return &types.PlatformConnection{
			ClientID:  clientID,
			Platform:  platform,
			Connected: false,
		}, nil
	}
	return conn, nil
}

func (s *connectionService) SetConnection(ctx context.Context, clientID uuid.UUID, platform string, connected bool) (*types.PlatformConnection, error) {
	if platform == "" {
		return nil, fmt.Errorf("%w: missing platform", ErrInvalidArgument)
	}
	conn := &types.PlatformConnection{
		ID:        uuid.New(),
		ClientID:  clientID,
		Platform:  platform,
		Connected: connected,
	}
	if err := s.repo.Upsert(ctx, nil, conn); err != nil {
		return nil, fmt.Errorf("upsert connection: %w", err)
	}
	return conn, nil
}
