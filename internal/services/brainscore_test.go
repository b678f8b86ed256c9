package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fvstudio/fvs-backend/internal/config"
	"github.com/fvstudio/fvs-backend/internal/sse"
	"github.com/fvstudio/fvs-backend/internal/types"
)

type brainFixture struct {
	svc       BrainScoreService
	scores    *fakeScoreRepo
	subs      *fakeSubmissionRepo
	analytics *fakeAnalyticsRepo
	emitter   *recordingEmitter
	sink      *recordingSink
}

func newBrainFixture(t *testing.T) *brainFixture {
	t.Helper()
	f := &brainFixture{
		scores:    newFakeScoreRepo(),
		subs:      newFakeSubmissionRepo(),
		analytics: newFakeAnalyticsRepo(),
		emitter:   &recordingEmitter{},
		sink:      &recordingSink{},
	}
	f.svc = NewBrainScoreService(
		nil, mustTestLogger(t), config.Default(),
		f.scores, f.subs, f.analytics,
		NewBrainNotifier(f.emitter, f.sink),
	)
	return f
}

func (f *brainFixture) seedScore(t *testing.T, clientID uuid.UUID, tier string, createdAt time.Time) *types.BrainScore {
	t.Helper()
	score := &types.BrainScore{
		ID:                 uuid.New(),
		ClientID:           clientID,
		RecommendationID:   uuid.New(),
		SubmissionID:       uuid.New(),
		PredictedTier:      tier,
		PredictedTitle:     "predicted title",
		PerformanceVerdict: types.VerdictPending,
		CreatedAt:          createdAt,
	}
	if _, err := f.scores.Create(context.Background(), nil, []*types.BrainScore{score}); err != nil {
		t.Fatalf("seed score: %v", err)
	}
	return score
}

func (f *brainFixture) publishSubmission(t *testing.T, score *types.BrainScore, views, likes int64) {
	t.Helper()
	sub := &types.Submission{
		ID:       score.SubmissionID,
		ClientID: score.ClientID,
		Title:    "published episode",
		Kind:     "video",
		Status:   types.SubmissionPublished,
	}
	if _, err := f.subs.Create(context.Background(), nil, []*types.Submission{sub}); err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	f.analytics.mu.Lock()
	f.analytics.latest[score.SubmissionID] = &types.AnalyticsSnapshot{
		ID:           uuid.New(),
		ClientID:     score.ClientID,
		SubmissionID: score.SubmissionID,
		Views:        views,
		Likes:        likes,
		CapturedAt:   time.Now(),
	}
	f.analytics.mu.Unlock()
}

func TestAccuracyZeroWhenNothingScored(t *testing.T) {
	f := newBrainFixture(t)
	clientID := uuid.New()
	f.seedScore(t, clientID, types.TierHigh, time.Now())
	f.seedScore(t, clientID, types.TierMedium, time.Now())

	summary, err := f.svc.GetBrainScores(context.Background(), clientID)
	if err != nil {
		t.Fatalf("GetBrainScores: %v", err)
	}
	if summary.TotalPredictions != 2 || summary.Scored != 0 {
		t.Fatalf("counts: total=%d scored=%d", summary.TotalPredictions, summary.Scored)
	}
	if summary.AccuracyPercentage != 0 {
		t.Fatalf("accuracy with zero scored: want=0 got=%v", summary.AccuracyPercentage)
	}
}

func TestReconcileSettlesAgainstTierThreshold(t *testing.T) {
	f := newBrainFixture(t)
	clientID := uuid.New()
	policy := config.Default()

	hit := f.seedScore(t, clientID, types.TierHigh, time.Now())
	f.publishSubmission(t, hit, policy.BreakoutViews, 500)
	miss := f.seedScore(t, clientID, types.TierHigh, time.Now())
	f.publishSubmission(t, miss, policy.BreakoutViews-1, 500)

	settled, err := f.svc.Reconcile(context.Background(), clientID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if settled != 2 {
		t.Fatalf("settled: want=2 got=%d", settled)
	}

	scores, _ := f.scores.ListByClient(context.Background(), nil, clientID, 0)
	verdicts := map[uuid.UUID]string{}
	for _, s := range scores {
		verdicts[s.ID] = s.PerformanceVerdict
		if s.ScoredAt == nil || s.ActualViews == nil {
			t.Fatalf("score %s missing settle fields", s.ID)
		}
	}
	if verdicts[hit.ID] != types.VerdictCorrect {
		t.Fatalf("at-threshold verdict: want=correct got=%s", verdicts[hit.ID])
	}
	if verdicts[miss.ID] != types.VerdictIncorrect {
		t.Fatalf("below-threshold verdict: want=incorrect got=%s", verdicts[miss.ID])
	}
	if got := len(f.emitter.byEvent(sse.SSEEventBrainScoreSettled)); got != 2 {
		t.Fatalf("settle events: want=2 got=%d", got)
	}
}

func TestReconcileSkipsUnpublishedAndUnmeasured(t *testing.T) {
	f := newBrainFixture(t)
	clientID := uuid.New()

	// Pending score with no submission row at all.
	f.seedScore(t, clientID, types.TierMedium, time.Now())

	// Published but no analytics snapshot yet.
	unmeasured := f.seedScore(t, clientID, types.TierMedium, time.Now())
	sub := &types.Submission{
		ID:       unmeasured.SubmissionID,
		ClientID: clientID,
		Title:    "no data yet",
		Kind:     "video",
		Status:   types.SubmissionPublished,
	}
	if _, err := f.subs.Create(context.Background(), nil, []*types.Submission{sub}); err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	settled, err := f.svc.Reconcile(context.Background(), clientID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if settled != 0 {
		t.Fatalf("settled: want=0 got=%d", settled)
	}
	pending, _ := f.scores.ListPending(context.Background(), nil, clientID)
	if len(pending) != 2 {
		t.Fatalf("pending: want=2 got=%d", len(pending))
	}
}

func TestReconcileIsRepeatable(t *testing.T) {
	f := newBrainFixture(t)
	clientID := uuid.New()
	score := f.seedScore(t, clientID, types.TierMedium, time.Now())
	f.publishSubmission(t, score, config.Default().BaselineViews+10, 5)

	if settled, _ := f.svc.Reconcile(context.Background(), clientID); settled != 1 {
		t.Fatalf("first pass: want=1 got=%d", settled)
	}
	if settled, _ := f.svc.Reconcile(context.Background(), clientID); settled != 0 {
		t.Fatalf("second pass: want=0 got=%d", settled)
	}
}

func TestGetActiveChallengesClampsExpired(t *testing.T) {
	f := newBrainFixture(t)
	clientID := uuid.New()
	window := config.Default().ChallengeWindowDays

	f.seedScore(t, clientID, types.TierHigh, time.Now())
	f.seedScore(t, clientID, types.TierHigh, time.Now().AddDate(0, 0, -(window+3)))

	challenges, err := f.svc.GetActiveChallenges(context.Background(), clientID)
	if err != nil {
		t.Fatalf("GetActiveChallenges: %v", err)
	}
	if len(challenges) != 2 {
		t.Fatalf("challenges: want=2 got=%d", len(challenges))
	}
	// Sorted by urgency, expired first.
	expired := challenges[0]
	if !expired.Expired || expired.DaysRemaining != 0 {
		t.Fatalf("expired challenge: expired=%v days=%d", expired.Expired, expired.DaysRemaining)
	}
	fresh := challenges[1]
	if fresh.Expired || fresh.DaysRemaining != window {
		t.Fatalf("fresh challenge: expired=%v days=%d want=%d", fresh.Expired, fresh.DaysRemaining, window)
	}
}

func TestGetLeaderboardOrdering(t *testing.T) {
	f := newBrainFixture(t)
	strong := uuid.New()
	weak := uuid.New()
	now := time.Now()

	seedScored := func(clientID uuid.UUID, verdict string) {
		score := f.seedScore(t, clientID, types.TierMedium, now)
		if _, err := f.scores.UpdateFields(context.Background(), nil, score.ID, map[string]interface{}{
			"performance_verdict": verdict,
			"scored_at":           now,
		}); err != nil {
			t.Fatalf("settle seed score: %v", err)
		}
	}
	seedScored(strong, types.VerdictCorrect)
	seedScored(strong, types.VerdictCorrect)
	seedScored(weak, types.VerdictCorrect)
	seedScored(weak, types.VerdictIncorrect)

	entries, err := f.svc.GetLeaderboard(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: want=2 got=%d", len(entries))
	}
	if entries[0].ClientID != strong {
		t.Fatalf("leader: want=%s got=%s", strong, entries[0].ClientID)
	}
	if entries[0].AccuracyPercentage != 100 || entries[1].AccuracyPercentage != 50 {
		t.Fatalf("accuracy: got %v and %v", entries[0].AccuracyPercentage, entries[1].AccuracyPercentage)
	}
}

func TestGetAccuracyTrendBucketsByWeek(t *testing.T) {
	f := newBrainFixture(t)
	clientID := uuid.New()
	now := time.Now()

	score := f.seedScore(t, clientID, types.TierMedium, now.AddDate(0, 0, -10))
	scoredAt := now.AddDate(0, 0, -2)
	if _, err := f.scores.UpdateFields(context.Background(), nil, score.ID, map[string]interface{}{
		"performance_verdict": types.VerdictCorrect,
		"scored_at":           scoredAt,
	}); err != nil {
		t.Fatalf("settle score: %v", err)
	}

	points, err := f.svc.GetAccuracyTrend(context.Background(), clientID, 4)
	if err != nil {
		t.Fatalf("GetAccuracyTrend: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("points: want=4 got=%d", len(points))
	}
	last := points[len(points)-1]
	if last.Scored != 1 || last.Correct != 1 || last.Accuracy != 100 {
		t.Fatalf("latest bucket: scored=%d correct=%d accuracy=%v", last.Scored, last.Correct, last.Accuracy)
	}
	for _, p := range points[:len(points)-1] {
		if p.Accuracy != 0 {
			t.Fatalf("empty bucket accuracy: want=0 got=%v", p.Accuracy)
		}
	}
}
