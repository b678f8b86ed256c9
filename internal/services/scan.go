package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/types"
)

// TrendSource supplies raw competitor or trending-topic observations.
// Real integrations live outside the core; the seeded source stands in.
type TrendSource interface {
	ScanCompetitors(ctx context.Context, clientID uuid.UUID) ([]*types.TrendSignal, error)
	ScanTrendingTopics(ctx context.Context, clientID uuid.UUID) ([]*types.TrendSignal, error)
}

type ScanService interface {
	// TriggerScan starts the three-stage job asynchronously and returns
	// immediately. A second trigger for the same client overwrites the
	// first's status record (last-writer-wins).
	TriggerScan(ctx context.Context, clientID uuid.UUID) error
	GetScanStatus(ctx context.Context, clientID uuid.UUID) (ScanStatus, error)
	GetRecommendations(ctx context.Context, clientID uuid.UUID, limit int) ([]*types.Recommendation, error)
	// Wait blocks until in-flight scan jobs finish; used on shutdown.
	Wait()
}

type scanService struct {
	db  *gorm.DB
	log *logger.Logger

	signalRepo repos.TrendSignalRepo
	recRepo    repos.RecommendationRepo

	source   TrendSource
	statuses ScanStatusStore
	sink     NotificationSink
	notifier ScanNotifier

	// wg lets tests wait for the async job to finish.
	wg sync.WaitGroup
}

func NewScanService(
	db *gorm.DB,
	baseLog *logger.Logger,
	signalRepo repos.TrendSignalRepo,
	recRepo repos.RecommendationRepo,
	source TrendSource,
	statuses ScanStatusStore,
	sink NotificationSink,
	notifier ScanNotifier,
) ScanService {
	return &scanService{
		db:         db,
		log:        baseLog.With("service", "ScanService"),
		signalRepo: signalRepo,
		recRepo:    recRepo,
		source:     source,
		statuses:   statuses,
		sink:       sink,
		notifier:   notifier,
	}
}

func (s *scanService) TriggerScan(ctx context.Context, clientID uuid.UUID) error {
	if clientID == uuid.Nil {
		return fmt.Errorf("%w: missing client id", ErrInvalidArgument)
	}
	now := time.Now()
	if err := s.statuses.Set(ctx, clientID, ScanStatus{
		State:     ScanScanning,
		Stage:     "competitors",
		StartedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("set scan status: %w", err)
	}
	s.notifier.ScanStarted(clientID)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// The job outlives the triggering request.
		s.run(context.Background(), clientID, now)
	}()
	return nil
}

// run executes the stages strictly in order; a stage's signals are
// persisted before the next stage begins. A stage failure aborts the
// job into the error state with the message retained; rows written by
// completed stages are not rolled back and stay queryable.
func (s *scanService) run(ctx context.Context, clientID uuid.UUID, startedAt time.Time) {
	fail := func(stage string, err error) {
		s.log.Warn("Scan stage failed", "client_id", clientID, "stage", stage, "error", err)
		_ = s.statuses.Set(ctx, clientID, ScanStatus{
			State:     ScanError,
			Stage:     stage,
			Error:     err.Error(),
			StartedAt: startedAt,
			UpdatedAt: time.Now(),
		})
		s.notifier.ScanFailed(clientID, stage, err.Error())
	}
	progress := func(stage string) {
		_ = s.statuses.Set(ctx, clientID, ScanStatus{
			State:     ScanScanning,
			Stage:     stage,
			StartedAt: startedAt,
			UpdatedAt: time.Now(),
		})
	}

	// Stage 1: competitor pull.
	competitors, err := s.source.ScanCompetitors(ctx, clientID)
	if err != nil {
		fail("competitors", err)
		return
	}
	if _, err := s.signalRepo.Create(ctx, nil, competitors); err != nil {
		fail("competitors", fmt.Errorf("persist competitor signals: %w", err))
		return
	}

	// Stage 2: trending topics.
	progress("topics")
	topics, err := s.source.ScanTrendingTopics(ctx, clientID)
	if err != nil {
		fail("topics", err)
		return
	}
	if _, err := s.signalRepo.Create(ctx, nil, topics); err != nil {
		fail("topics", fmt.Errorf("persist topic signals: %w", err))
		return
	}

	// Stage 3: ranking.
	progress("recommendations")
	recs := rankRecommendations(clientID, append(append([]*types.TrendSignal{}, competitors...), topics...))
	if _, err := s.recRepo.Create(ctx, nil, recs); err != nil {
		fail("recommendations", fmt.Errorf("persist recommendations: %w", err))
		return
	}

	_ = s.statuses.Set(ctx, clientID, ScanStatus{
		State:     ScanComplete,
		Stage:     "done",
		StartedAt: startedAt,
		UpdatedAt: time.Now(),
	})

	// Exactly one notification record summarizing the counts.
	msg := fmt.Sprintf("Scanned %d competitor signals and %d trending topics; produced %d recommendations.",
		len(competitors), len(topics), len(recs))
	if err := s.sink.CreateNotification(ctx, clientID, "scan_complete", "Trend scan finished", msg, "/recommendations"); err != nil {
		s.log.Warn("Scan: create notification failed", "client_id", clientID, "error", err)
	}
	s.notifier.ScanComplete(clientID, len(competitors), len(topics), len(recs))
}

// rankRecommendations turns the strongest signals into ranked
// recommendations; the top third earns the High tier.
func rankRecommendations(clientID uuid.UUID, signals []*types.TrendSignal) []*types.Recommendation {
	if len(signals) == 0 {
		return nil
	}
	best := make(map[string]*types.TrendSignal)
	for _, sig := range signals {
		if sig == nil || sig.Topic == "" {
			continue
		}
		if cur, ok := best[sig.Topic]; !ok || sig.Score > cur.Score {
			best[sig.Topic] = sig
		}
	}
	ordered := make([]*types.TrendSignal, 0, len(best))
	for _, sig := range best {
		ordered = append(ordered, sig)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Score > ordered[j].Score })

	highCut := (len(ordered) + 2) / 3
	out := make([]*types.Recommendation, 0, len(ordered))
	for i, sig := range ordered {
		tier := types.TierMedium
		if i < highCut {
			tier = types.TierHigh
		}
		out = append(out, &types.Recommendation{
			ID:        uuid.New(),
			ClientID:  clientID,
			Title:     sig.Topic,
			Tier:      tier,
			Rationale: fmt.Sprintf("Signal from %s (%s, score %.2f)", sig.Source, sig.Label, sig.Score),
			Rank:      i + 1,
		})
	}
	return out
}

func (s *scanService) GetScanStatus(ctx context.Context, clientID uuid.UUID) (ScanStatus, error) {
	return s.statuses.Get(ctx, clientID)
}

func (s *scanService) GetRecommendations(ctx context.Context, clientID uuid.UUID, limit int) ([]*types.Recommendation, error) {
	return s.recRepo.ListByClient(ctx, nil, clientID, limit)
}

func (s *scanService) Wait() {
	s.wg.Wait()
}

// seededTrendSource is the in-core stand-in for real integrations.
type seededTrendSource struct {
	log *logger.Logger
}

func NewSeededTrendSource(log *logger.Logger) TrendSource {
	return &seededTrendSource{log: log.With("service", "SeededTrendSource")}
}

func (t *seededTrendSource) ScanCompetitors(ctx context.Context, clientID uuid.UUID) ([]*types.TrendSignal, error) {
	seeds := []struct {
		topic string
		label string
		score float64
	}{
		{"short-form repurposing", "competitor upload spike", 0.91},
		{"episode teardown series", "sustained competitor growth", 0.77},
		{"collab interviews", "new competitor format", 0.64},
	}
	out := make([]*types.TrendSignal, 0, len(seeds))
	for _, sd := range seeds {
		out = append(out, &types.TrendSignal{
			ID:       uuid.New(),
			ClientID: clientID,
			Source:   "competitor",
			Topic:    sd.topic,
			Label:    sd.label,
			Score:    sd.score,
		})
	}
	return out, nil
}

func (t *seededTrendSource) ScanTrendingTopics(ctx context.Context, clientID uuid.UUID) ([]*types.TrendSignal, error) {
	seeds := []struct {
		topic string
		label string
		score float64
	}{
		{"ai editing workflows", "rising searches", 0.88},
		{"creator burnout", "high engagement", 0.71},
		{"niche newsletters", "steady interest", 0.55},
	}
	out := make([]*types.TrendSignal, 0, len(seeds))
	for _, sd := range seeds {
		out = append(out, &types.TrendSignal{
			ID:       uuid.New(),
			ClientID: clientID,
			Source:   "trending",
			Topic:    sd.topic,
			Label:    sd.label,
			Score:    sd.score,
		})
	}
	return out, nil
}
