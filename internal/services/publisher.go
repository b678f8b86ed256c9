package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type PublishRequest struct {
	Task *types.PublishingTask
	// IdempotencyKey is derived from the task id so the platform can
	// tolerate duplicate submission attempts after a crash mid-publish.
	IdempotencyKey string
}

type PublishResult struct {
	PlatformPostID string
}

// Publisher is the outbound platform collaborator. A failure surfaces as
// a task-level failure, never as a dispatcher crash.
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) (PublishResult, error)
}

// stubPublisher stands in for the real platform integrations; it mints a
// deterministic post id from the idempotency key.
type stubPublisher struct {
	log *logger.Logger
}

func NewStubPublisher(log *logger.Logger) Publisher {
	return &stubPublisher{log: log.With("service", "StubPublisher")}
}

func (p *stubPublisher) Publish(ctx context.Context, req PublishRequest) (PublishResult, error) {
	if req.Task == nil {
		return PublishResult{}, fmt.Errorf("%w: nil task", ErrInvalidArgument)
	}
	key := req.IdempotencyKey
	if key == "" {
		key = req.Task.ID.String()
	}
	platform := strings.ToLower(req.Task.Platform)
	p.log.Info("Stub publish", "task_id", req.Task.ID, "platform", platform)
	return PublishResult{
		PlatformPostID: platform + "-" + key,
	}, nil
}

// IdempotencyKeyForTask keeps dispatch and retries submitting with the
// same key.
func IdempotencyKeyForTask(taskID uuid.UUID) string {
	return "pub-" + taskID.String()
}
