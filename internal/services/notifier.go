package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/sse"
	"github.com/fvstudio/fvs-backend/internal/types"
)

// NotificationSink persists the durable notification record. SSE is the
// best-effort channel layered on top of it.
type NotificationSink interface {
	CreateNotification(ctx context.Context, clientID uuid.UUID, notifType, title, message, link string) error
}

type repoNotificationSink struct {
	log  *logger.Logger
	repo repos.NotificationRepo
}

func NewNotificationSink(log *logger.Logger, repo repos.NotificationRepo) NotificationSink {
	return &repoNotificationSink{
		log:  log.With("service", "NotificationSink"),
		repo: repo,
	}
}

func (s *repoNotificationSink) CreateNotification(ctx context.Context, clientID uuid.UUID, notifType, title, message, link string) error {
	if clientID == uuid.Nil {
		return nil
	}
	_, err := s.repo.Create(ctx, nil, []*types.Notification{{
		ID:       uuid.New(),
		ClientID: clientID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Link:     link,
	}})
	return err
}

// =========================
// Pipeline notifier
// =========================

type PipelineNotifier interface {
	PipelineAdvanced(clientID uuid.UUID, sub *types.Submission, step string)
	PublishPosted(clientID uuid.UUID, task *types.PublishingTask)
	PublishFailed(clientID uuid.UUID, task *types.PublishingTask, errorMessage string)
}

type pipelineNotifier struct {
	emit SSEEmitter
	sink NotificationSink
}

func NewPipelineNotifier(emit SSEEmitter, sink NotificationSink) PipelineNotifier {
	return &pipelineNotifier{emit: emit, sink: sink}
}

func (n *pipelineNotifier) PipelineAdvanced(clientID uuid.UUID, sub *types.Submission, step string) {
	if n == nil || n.emit == nil || clientID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), sse.SSEMessage{
		Channel: clientID.String(),
		Event:   sse.SSEEventPipelineAdvanced,
		Data: map[string]any{
			"submission_id": safeSubmissionID(sub),
			"step":          step,
			"submission":    sub,
		},
	})
}

func (n *pipelineNotifier) PublishPosted(clientID uuid.UUID, task *types.PublishingTask) {
	if n == nil || clientID == uuid.Nil {
		return
	}
	if n.emit != nil {
		n.emit.Emit(context.Background(), sse.SSEMessage{
			Channel: clientID.String(),
			Event:   sse.SSEEventPublishPosted,
			Data:    map[string]any{"task_id": safeTaskID(task), "task": task},
		})
	}
	if n.sink != nil {
		_ = n.sink.CreateNotification(context.Background(), clientID, "publish_posted",
			"Episode posted", "Your scheduled episode was posted.", "/publishing/"+safeTaskID(task).String())
	}
}

func (n *pipelineNotifier) PublishFailed(clientID uuid.UUID, task *types.PublishingTask, errorMessage string) {
	if n == nil || clientID == uuid.Nil {
		return
	}
	if n.emit != nil {
		n.emit.Emit(context.Background(), sse.SSEMessage{
			Channel: clientID.String(),
			Event:   sse.SSEEventPublishFailed,
			Data: map[string]any{
				"task_id": safeTaskID(task),
				"error":   errorMessage,
				"task":    task,
			},
		})
	}
	if n.sink != nil {
		_ = n.sink.CreateNotification(context.Background(), clientID, "publish_failed",
			"Publishing failed", errorMessage, "/publishing/"+safeTaskID(task).String())
	}
}

// =========================
// Brain notifier
// =========================

type BrainNotifier interface {
	IdeasProposed(clientID uuid.UUID, count int, source string)
	ScoreCreated(clientID uuid.UUID, score *types.BrainScore)
	ScoreSettled(clientID uuid.UUID, score *types.BrainScore)
}

type brainNotifier struct {
	emit SSEEmitter
	sink NotificationSink
}

func NewBrainNotifier(emit SSEEmitter, sink NotificationSink) BrainNotifier {
	return &brainNotifier{emit: emit, sink: sink}
}

func (n *brainNotifier) IdeasProposed(clientID uuid.UUID, count int, source string) {
	if n == nil || n.emit == nil || clientID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), sse.SSEMessage{
		Channel: clientID.String(),
		Event:   sse.SSEEventIdeasProposed,
		Data:    map[string]any{"count": count, "source": source},
	})
}

func (n *brainNotifier) ScoreCreated(clientID uuid.UUID, score *types.BrainScore) {
	if n == nil || n.emit == nil || clientID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), sse.SSEMessage{
		Channel: clientID.String(),
		Event:   sse.SSEEventBrainScoreCreated,
		Data:    map[string]any{"score": score},
	})
}

func (n *brainNotifier) ScoreSettled(clientID uuid.UUID, score *types.BrainScore) {
	if n == nil || clientID == uuid.Nil {
		return
	}
	if n.emit != nil {
		n.emit.Emit(context.Background(), sse.SSEMessage{
			Channel: clientID.String(),
			Event:   sse.SSEEventBrainScoreSettled,
			Data:    map[string]any{"score": score},
		})
	}
	if n.sink != nil && score != nil {
		_ = n.sink.CreateNotification(context.Background(), clientID, "brain_score",
			"Prediction scored", score.VerdictReasoning, "/brain/scores")
	}
}

// =========================
// Scan notifier
// =========================

type ScanNotifier interface {
	ScanStarted(clientID uuid.UUID)
	ScanComplete(clientID uuid.UUID, competitors, topics, recommendations int)
	ScanFailed(clientID uuid.UUID, stage, errorMessage string)
}

type scanNotifier struct {
	emit SSEEmitter
	sink NotificationSink
}

func NewScanNotifier(emit SSEEmitter, sink NotificationSink) ScanNotifier {
	return &scanNotifier{emit: emit, sink: sink}
}

func (n *scanNotifier) ScanStarted(clientID uuid.UUID) {
	if n == nil || n.emit == nil || clientID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), sse.SSEMessage{
		Channel: clientID.String(),
		Event:   sse.SSEEventScanStarted,
	})
}

func (n *scanNotifier) ScanComplete(clientID uuid.UUID, competitors, topics, recommendations int) {
	if n == nil || clientID == uuid.Nil {
		return
	}
	if n.emit != nil {
		n.emit.Emit(context.Background(), sse.SSEMessage{
			Channel: clientID.String(),
			Event:   sse.SSEEventScanComplete,
			Data: map[string]any{
				"competitors":     competitors,
				"topics":          topics,
				"recommendations": recommendations,
			},
		})
	}
}

func (n *scanNotifier) ScanFailed(clientID uuid.UUID, stage, errorMessage string) {
	if n == nil || n.emit == nil || clientID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), sse.SSEMessage{
		Channel: clientID.String(),
		Event:   sse.SSEEventScanFailed,
		Data:    map[string]any{"stage": stage, "error": errorMessage},
	})
}

// =========================
// helpers
// =========================

func safeSubmissionID(sub *types.Submission) uuid.UUID {
	if sub == nil {
		return uuid.Nil
	}
	return sub.ID
}

func safeTaskID(task *types.PublishingTask) uuid.UUID {
	if task == nil {
		return uuid.Nil
	}
	return task.ID
}
