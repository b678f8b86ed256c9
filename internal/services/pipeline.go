package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/config"
	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/types"
)

// The four pipeline gates, in required order. Script precedes video,
// video precedes thumbnail, thumbnail precedes publish; next_step is the
// first unmet gate.
const (
	StepCreateScript    = "create script"
	StepProduceVideo    = "produce video"
	StepCreateThumbnail = "create thumbnail"
	StepPublish         = "publish"
	StepComplete        = "complete"
)

type PipelineStatusReport struct {
	SubmissionID      uuid.UUID `json:"submission_id"`
	HasScript         bool      `json:"has_script"`
	HasVideo          bool      `json:"has_video"`
	HasThumbnail      bool      `json:"has_thumbnail"`
	IsScheduled       bool      `json:"is_scheduled"`
	IsPublished       bool      `json:"is_published"`
	CompletionPercent int       `json:"completion_percent"`
	NextStep          string    `json:"next_step"`
	NextStepURL       string    `json:"next_step_url"`
}

type PipelineHealthReport struct {
	CountsByStatus map[types.SubmissionStatus]int64 `json:"counts_by_status"`
	HasContentGap  bool                             `json:"has_content_gap"`
	GapHours       float64                          `json:"gap_hours"`
	Stalled        []uuid.UUID                      `json:"stalled"`
}

type ScriptToSubmissionRequest struct {
	Title             string
	Kind              string
	Script            string
	IdeaID            *uuid.UUID
	StrategySessionID *uuid.UUID
	RecommendationID  *uuid.UUID
	ReleaseDate       *time.Time
}

type VideoLinkRequest struct {
	StorageKey string
	URL        string
}

type PipelineService interface {
	GetPipelineStatus(ctx context.Context, clientID, submissionID uuid.UUID) (*PipelineStatusReport, error)
	GetPipelineHealth(ctx context.Context, clientID uuid.UUID) (*PipelineHealthReport, error)
	ScriptToSubmission(ctx context.Context, clientID uuid.UUID, req ScriptToSubmissionRequest) (*types.Submission, error)
	SubmissionToVideo(ctx context.Context, clientID, submissionID uuid.UUID, req VideoLinkRequest) (*types.Asset, error)
	ProduceEpisode(ctx context.Context, clientID, submissionID uuid.UUID) (*PipelineStatusReport, error)
	UpdateStatus(ctx context.Context, clientID, submissionID uuid.UUID, next types.SubmissionStatus) (*types.Submission, error)
}

type pipelineService struct {
	db     *gorm.DB
	log    *logger.Logger
	policy config.Policy

	submissionRepo repos.SubmissionRepo
	assetRepo      repos.AssetRepo
	recRepo        repos.RecommendationRepo
	scoreRepo      repos.BrainScoreRepo

	notifier      PipelineNotifier
	brainNotifier BrainNotifier
}

func NewPipelineService(
	db *gorm.DB,
	baseLog *logger.Logger,
	policy config.Policy,
	submissionRepo repos.SubmissionRepo,
	assetRepo repos.AssetRepo,
	recRepo repos.RecommendationRepo,
	scoreRepo repos.BrainScoreRepo,
	notifier PipelineNotifier,
	brainNotifier BrainNotifier,
) PipelineService {
	return &pipelineService{
		db:             db,
		log:            baseLog.With("service", "PipelineService"),
		policy:         policy,
		submissionRepo: submissionRepo,
		assetRepo:      assetRepo,
		recRepo:        recRepo,
		scoreRepo:      scoreRepo,
		notifier:       notifier,
		brainNotifier:  brainNotifier,
	}
}

// GetPipelineStatus is a pure read-time projection; it performs no
// writes and recomputes from the latest rows on every call.
func (s *pipelineService) GetPipelineStatus(ctx context.Context, clientID, submissionID uuid.UUID) (*PipelineStatusReport, error) {
	sub, err := s.submissionRepo.GetByID(ctx, nil, clientID, submissionID)
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if sub == nil {
		return nil, ErrNotFound
	}

	assets, err := s.assetRepo.GetBySubmissionID(ctx, nil, clientID, submissionID)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	hasVideo, hasThumbnail := false, false
	for _, a := range assets {
		switch a.Kind {
		case types.AssetKindVideo:
			hasVideo = true
		case types.AssetKindThumbnail:
			hasThumbnail = true
		}
	}

	report := &PipelineStatusReport{
		SubmissionID: sub.ID,
		HasScript:    sub.Script != "" || sub.StrategySessionID != nil,
		HasVideo:     hasVideo,
		HasThumbnail: hasThumbnail,
		IsScheduled:  sub.Status == types.SubmissionScheduled,
		IsPublished:  sub.Status == types.SubmissionPublished || sub.PlatformVideoID != "",
	}

	met := 0
	for _, ok := range []bool{report.HasScript, report.HasVideo, report.HasThumbnail, report.IsPublished} {
		if ok {
			met++
		}
	}
	report.CompletionPercent = int(math.Round(100 * float64(met) / 4))

	switch {
	case !report.HasScript:
		report.NextStep = StepCreateScript
		report.NextStepURL = fmt.Sprintf("/submissions/%s/script", sub.ID)
	case !report.HasVideo:
		report.NextStep = StepProduceVideo
		report.NextStepURL = fmt.Sprintf("/submissions/%s/video", sub.ID)
	case !report.HasThumbnail:
		report.NextStep = StepCreateThumbnail
		report.NextStepURL = fmt.Sprintf("/submissions/%s/thumbnail", sub.ID)
	case !report.IsPublished:
		report.NextStep = StepPublish
		report.NextStepURL = fmt.Sprintf("/submissions/%s/publish", sub.ID)
	default:
		report.NextStep = StepComplete
		report.NextStepURL = fmt.Sprintf("/submissions/%s", sub.ID)
	}
	return report, nil
}

func (s *pipelineService) GetPipelineHealth(ctx context.Context, clientID uuid.UUID) (*PipelineHealthReport, error) {
	counts, err := s.submissionRepo.CountByStatus(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	report := &PipelineHealthReport{
		CountsByStatus: counts,
		Stalled:        []uuid.UUID{},
	}

	latest, err := s.submissionRepo.LatestRelease(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("latest release: %w", err)
	}
	gap := time.Duration(s.policy.ContentGapHours) * time.Hour
	if latest == nil {
		report.HasContentGap = true
	} else {
		elapsed := time.Since(*latest)
		report.GapHours = elapsed.Hours()
		report.HasContentGap = elapsed > gap
	}

	active, err := s.submissionRepo.ListByClient(ctx, nil, clientID, []types.SubmissionStatus{
		types.SubmissionIntake, types.SubmissionEditing, types.SubmissionDesign,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("list active submissions: %w", err)
	}
	for _, sub := range active {
		if time.Since(sub.UpdatedAt) > gap {
			report.Stalled = append(report.Stalled, sub.ID)
		}
	}
	return report, nil
}

func (s *pipelineService) ScriptToSubmission(ctx context.Context, clientID uuid.UUID, req ScriptToSubmissionRequest) (*types.Submission, error) {
	if clientID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing client id", ErrInvalidArgument)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrInvalidArgument)
	}
	kind := req.Kind
	if kind == "" {
		kind = "video"
	}

	var sub *types.Submission
	var score *types.BrainScore

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		sub = &types.Submission{
			ID:                uuid.New(),
			ClientID:          clientID,
			Title:             req.Title,
			Kind:              kind,
			Status:            types.SubmissionIntake,
			ReleaseDate:       req.ReleaseDate,
			IdeaID:            req.IdeaID,
			StrategySessionID: req.StrategySessionID,
			RecommendationID:  req.RecommendationID,
			Script:            req.Script,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if _, err := s.submissionRepo.Create(ctx, tx, []*types.Submission{sub}); err != nil {
			return fmt.Errorf("create submission: %w", err)
		}

		// The single coupling point between the recommendation engine and
		// the score ledger: the pending prediction is written in the same
		// transaction as the submission so it can never be lost.
		if req.RecommendationID != nil {
			rec, err := s.recRepo.GetByID(ctx, tx, clientID, *req.RecommendationID)
			if err != nil {
				return fmt.Errorf("load recommendation: %w", err)
			}
			if rec == nil {
				return fmt.Errorf("recommendation: %w", ErrNotFound)
			}
			score = &types.BrainScore{
				ID:                 uuid.New(),
				ClientID:           clientID,
				RecommendationID:   rec.ID,
				SubmissionID:       sub.ID,
				PredictedTier:      rec.Tier,
				PredictedTitle:     rec.Title,
				PerformanceVerdict: types.VerdictPending,
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if _, err := s.scoreRepo.Create(ctx, tx, []*types.BrainScore{score}); err != nil {
				return fmt.Errorf("create brain score: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PipelineAdvanced(clientID, sub, StepCreateScript)
	if score != nil {
		s.brainNotifier.ScoreCreated(clientID, score)
	}
	return sub, nil
}

func (s *pipelineService) SubmissionToVideo(ctx context.Context, clientID, submissionID uuid.UUID, req VideoLinkRequest) (*types.Asset, error) {
	sub, err := s.submissionRepo.GetByID(ctx, nil, clientID, submissionID)
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	if req.StorageKey == "" {
		return nil, fmt.Errorf("%w: missing storage key", ErrInvalidArgument)
	}
	hasVideo, err := s.assetRepo.HasKind(ctx, nil, clientID, submissionID, types.AssetKindVideo)
	if err != nil {
		return nil, fmt.Errorf("check video asset: %w", err)
	}
	if hasVideo {
		return nil, fmt.Errorf("%w: submission already has a linked video", ErrInvalidArgument)
	}

	asset := &types.Asset{
		ID:           uuid.New(),
		ClientID:     clientID,
		SubmissionID: submissionID,
		Kind:         types.AssetKindVideo,
		StorageKey:   req.StorageKey,
		URL:          req.URL,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.assetRepo.Create(ctx, tx, []*types.Asset{asset}); err != nil {
			return fmt.Errorf("create asset: %w", err)
		}
		// Linking a video advances early-stage submissions toward design.
		for _, next := range []types.SubmissionStatus{types.SubmissionEditing, types.SubmissionDesign} {
			if sub.Status.CanTransitionTo(next) {
				if _, err := s.submissionRepo.UpdateFields(ctx, tx, clientID, submissionID, map[string]interface{}{
					"status": next,
				}); err != nil {
					return fmt.Errorf("advance status: %w", err)
				}
				sub.Status = next
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PipelineAdvanced(clientID, sub, StepProduceVideo)
	return asset, nil
}

// ProduceEpisode walks the remaining gates with stubbed producers and
// leaves the submission scheduled.
func (s *pipelineService) ProduceEpisode(ctx context.Context, clientID, submissionID uuid.UUID) (*PipelineStatusReport, error) {
	report, err := s.GetPipelineStatus(ctx, clientID, submissionID)
	if err != nil {
		return nil, err
	}
	sub, err := s.submissionRepo.GetByID(ctx, nil, clientID, submissionID)
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if sub == nil {
		return nil, ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !report.HasScript {
			if _, err := s.submissionRepo.UpdateFields(ctx, tx, clientID, submissionID, map[string]interface{}{
				"script": fmt.Sprintf("Draft script for %q", sub.Title),
			}); err != nil {
				return fmt.Errorf("write draft script: %w", err)
			}
		}
		if !report.HasVideo {
			asset := &types.Asset{
				ID:           uuid.New(),
				ClientID:     clientID,
				SubmissionID: submissionID,
				Kind:         types.AssetKindVideo,
				StorageKey:   fmt.Sprintf("produced/%s/video", submissionID),
			}
			if _, err := s.assetRepo.Create(ctx, tx, []*types.Asset{asset}); err != nil {
				return fmt.Errorf("create video asset: %w", err)
			}
		}
		if !report.HasThumbnail {
			asset := &types.Asset{
				ID:           uuid.New(),
				ClientID:     clientID,
				SubmissionID: submissionID,
				Kind:         types.AssetKindThumbnail,
				StorageKey:   fmt.Sprintf("produced/%s/thumbnail", submissionID),
			}
			if _, err := s.assetRepo.Create(ctx, tx, []*types.Asset{asset}); err != nil {
				return fmt.Errorf("create thumbnail asset: %w", err)
			}
		}
		status := sub.Status
		for status != types.SubmissionScheduled && status.CanTransitionTo(nextForward(status)) {
			status = nextForward(status)
		}
		if status != sub.Status {
			if _, err := s.submissionRepo.UpdateFields(ctx, tx, clientID, submissionID, map[string]interface{}{
				"status": status,
			}); err != nil {
				return fmt.Errorf("advance status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PipelineAdvanced(clientID, sub, StepPublish)
	return s.GetPipelineStatus(ctx, clientID, submissionID)
}

// nextForward walks the pipeline toward scheduled; published is reached
// only through an explicit publish.
func nextForward(status types.SubmissionStatus) types.SubmissionStatus {
	switch status {
	case types.SubmissionIntake:
		return types.SubmissionEditing
	case types.SubmissionEditing:
		return types.SubmissionDesign
	case types.SubmissionDesign:
		return types.SubmissionScheduled
	default:
		return status
	}
}

func (s *pipelineService) UpdateStatus(ctx context.Context, clientID, submissionID uuid.UUID, next types.SubmissionStatus) (*types.Submission, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, next)
	}
	sub, err := s.submissionRepo.GetByID(ctx, nil, clientID, submissionID)
	if err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	if !sub.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: illegal transition %s -> %s", ErrInvalidArgument, sub.Status, next)
	}

	updates := map[string]interface{}{"status": next}
	// Unscheduling releases the slot.
	if sub.Status == types.SubmissionScheduled && next == types.SubmissionEditing {
		updates["release_date"] = nil
	}
	if _, err := s.submissionRepo.UpdateFields(ctx, nil, clientID, submissionID, updates); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	sub.Status = next
	s.notifier.PipelineAdvanced(clientID, sub, string(next))
	return sub, nil
}
