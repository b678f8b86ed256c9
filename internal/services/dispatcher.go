package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/config"
	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type DispatcherService interface {
	// StartWorker runs the fixed-interval poll loop until ctx is done.
	// No backoff, no jitter; a single active instance is assumed.
	StartWorker(ctx context.Context)
	// RunCycle performs one poll and reports how many tasks settled.
	RunCycle(ctx context.Context) int

	ScheduleTask(ctx context.Context, clientID, submissionID uuid.UUID, platform string, at time.Time) (*types.PublishingTask, error)
	RescheduleTask(ctx context.Context, clientID, taskID uuid.UUID, at time.Time) (*types.PublishingTask, error)
	CancelTask(ctx context.Context, clientID, taskID uuid.UUID) error
	ListTasks(ctx context.Context, clientID uuid.UUID, limit int) ([]*types.PublishingTask, error)
}

type dispatcherService struct {
	db     *gorm.DB
	log    *logger.Logger
	policy config.Policy

	taskRepo       repos.PublishingTaskRepo
	connRepo       repos.PlatformConnectionRepo
	submissionRepo repos.SubmissionRepo

	publisher Publisher
	notifier  PipelineNotifier
}

func NewDispatcherService(
	db *gorm.DB,
	baseLog *logger.Logger,
	policy config.Policy,
	taskRepo repos.PublishingTaskRepo,
	connRepo repos.PlatformConnectionRepo,
	submissionRepo repos.SubmissionRepo,
	publisher Publisher,
	notifier PipelineNotifier,
) DispatcherService {
	return &dispatcherService{
		db:             db,
		log:            baseLog.With("service", "DispatcherService"),
		policy:         policy,
		taskRepo:       taskRepo,
		connRepo:       connRepo,
		submissionRepo: submissionRepo,
		publisher:      publisher,
		notifier:       notifier,
	}
}

func (s *dispatcherService) StartWorker(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.policy.DispatchInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunCycle(ctx)
			}
		}
	}()
}

func (s *dispatcherService) RunCycle(ctx context.Context) int {
	staleBefore := time.Now().Add(-s.policy.PostingStaleAfter)
	due, err := s.taskRepo.ListDue(ctx, nil, time.Now(), staleBefore, 100)
	if err != nil {
		// Background loop logs and skips; it never crashes the process.
		s.log.Warn("Dispatcher: list due tasks failed", "error", err)
		return 0
	}

	// Tasks are independent once claimed; at most four publishes run at
	// a time so one slow platform cannot stall the whole cycle.
	var mu sync.Mutex
	settled := 0
	g := new(errgroup.Group)
	g.SetLimit(4)
	for _, task := range due {
		g.Go(func() error {
			if s.dispatchOne(ctx, task, staleBefore) {
				mu.Lock()
				settled++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return settled
}

// dispatchOne settles a single due task. The scheduled→posting claim is
// a status-filtered update and happens before the publish call, so a
// task whose status left "scheduled" is only re-selected once its claim
// goes stale; the idempotency key makes the duplicate attempt after a
// crash harmless on the platform side.
func (s *dispatcherService) dispatchOne(ctx context.Context, task *types.PublishingTask, staleBefore time.Time) bool {
	conn, err := s.connRepo.Get(ctx, nil, task.ClientID, task.Platform)
	if err != nil {
		s.log.Warn("Dispatcher: load platform connection failed", "task_id", task.ID, "error", err)
		return false
	}

	if conn == nil || !conn.Connected {
		msg := fmt.Sprintf("platform %s is not connected", task.Platform)
		// Straight to failed; disconnected tasks are never retried, the
		// client sees the failure through the notification instead.
		won, err := s.taskRepo.ClaimForPosting(ctx, nil, task.ID, staleBefore)
		if err != nil || !won {
			return false
		}
		if _, err := s.taskRepo.UpdateFields(ctx, nil, task.ID, map[string]interface{}{
			"status":        types.TaskFailed,
			"error_message": msg,
		}); err != nil {
			s.log.Warn("Dispatcher: mark failed failed", "task_id", task.ID, "error", err)
			return false
		}
		task.Status = types.TaskFailed
		task.ErrorMessage = msg
		s.notifier.PublishFailed(task.ClientID, task, msg)
		return true
	}

	won, err := s.taskRepo.ClaimForPosting(ctx, nil, task.ID, staleBefore)
	if err != nil {
		s.log.Warn("Dispatcher: claim failed", "task_id", task.ID, "error", err)
		return false
	}
	if !won {
		// Another poll already owns this task.
		return false
	}

	result, err := s.publisher.Publish(ctx, PublishRequest{
		Task:           task,
		IdempotencyKey: IdempotencyKeyForTask(task.ID),
	})
	if err != nil {
		msg := err.Error()
		if _, uerr := s.taskRepo.UpdateFields(ctx, nil, task.ID, map[string]interface{}{
			"status":        types.TaskFailed,
			"error_message": msg,
		}); uerr != nil {
			s.log.Warn("Dispatcher: mark failed failed", "task_id", task.ID, "error", uerr)
			return false
		}
		task.Status = types.TaskFailed
		task.ErrorMessage = msg
		s.notifier.PublishFailed(task.ClientID, task, msg)
		return true
	}

	now := time.Now()
	if _, err := s.taskRepo.UpdateFields(ctx, nil, task.ID, map[string]interface{}{
		"status":           types.TaskPosted,
		"posted_at":        now,
		"platform_post_id": result.PlatformPostID,
		"error_message":    "",
	}); err != nil {
		s.log.Warn("Dispatcher: mark posted failed", "task_id", task.ID, "error", err)
		return false
	}
	task.Status = types.TaskPosted
	task.PostedAt = &now
	task.PlatformPostID = result.PlatformPostID
	task.ErrorMessage = ""

	// Best effort: reflect the post on the submission so the pipeline
	// projection sees it as published.
	if _, err := s.submissionRepo.UpdateFields(ctx, nil, task.ClientID, task.SubmissionID, map[string]interface{}{
		"status":            types.SubmissionPublished,
		"platform_video_id": result.PlatformPostID,
	}); err != nil {
		s.log.Warn("Dispatcher: mark submission published failed", "task_id", task.ID, "error", err)
	}

	s.notifier.PublishPosted(task.ClientID, task)
	return true
}

func (s *dispatcherService) ScheduleTask(ctx context.Context, clientID, submissionID uuid.UUID, platform string, at time.Time) (*types.PublishingTask, error) {
	if platform == "" {
		return nil, fmt.Errorf("%w: missing platform", ErrInvalidArgument)
	}
	sub, err := s.submissionRepo.GetByID(ctx, nil, clientID, submissionID)
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if sub == nil {
		return nil, ErrNotFound
	}

	task := &types.PublishingTask{
		ID:           uuid.New(),
		ClientID:     clientID,
		SubmissionID: submissionID,
		Platform:     platform,
		Status:       types.TaskScheduled,
		ScheduledAt:  &at,
	}
	if _, err := s.taskRepo.Create(ctx, nil, []*types.PublishingTask{task}); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *dispatcherService) RescheduleTask(ctx context.Context, clientID, taskID uuid.UUID, at time.Time) (*types.PublishingTask, error) {
	task, err := s.taskRepo.GetByID(ctx, nil, clientID, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if task.Status != types.TaskScheduled && task.Status != types.TaskDraft {
		return nil, fmt.Errorf("%w: cannot reschedule a %s task", ErrInvalidArgument, task.Status)
	}
	if _, err := s.taskRepo.UpdateFields(ctx, nil, taskID, map[string]interface{}{
		"status":       types.TaskScheduled,
		"scheduled_at": at,
	}); err != nil {
		return nil, fmt.Errorf("reschedule task: %w", err)
	}
	task.Status = types.TaskScheduled
	task.ScheduledAt = &at
	return task, nil
}

func (s *dispatcherService) CancelTask(ctx context.Context, clientID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, nil, clientID, taskID)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}
	if task == nil {
		return ErrNotFound
	}
	if !task.Status.CanTransitionTo(types.TaskDraft) {
		return fmt.Errorf("%w: cannot cancel a %s task", ErrInvalidArgument, task.Status)
	}
	if _, err := s.taskRepo.UpdateFields(ctx, nil, taskID, map[string]interface{}{
		"status":       types.TaskDraft,
		"scheduled_at": nil,
	}); err != nil {
		return fmt.Errorf("cancel task: %w", err)
	}
	return nil
}

func (s *dispatcherService) ListTasks(ctx context.Context, clientID uuid.UUID, limit int) ([]*types.PublishingTask, error) {
	return s.taskRepo.ListByClient(ctx, nil, clientID, limit)
}
