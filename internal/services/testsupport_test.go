package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fvstudio/fvs-backend/internal/logger"
	"github.com/fvstudio/fvs-backend/internal/repos"
	"github.com/fvstudio/fvs-backend/internal/sse"
	"github.com/fvstudio/fvs-backend/internal/types"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

// newTestDB opens an in-memory database so services can run their
// transactions; all row access still goes through the fakes.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

// =========================
// repo fakes
// =========================

type fakeSubmissionRepo struct {
	mu   sync.Mutex
	subs map[uuid.UUID]*types.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[uuid.UUID]*types.Submission)}
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, tx *gorm.DB, subs []*types.Submission) ([]*types.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range subs {
		cp := *s
		r.subs[s.ID] = &cp
	}
	return subs, nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok || s.ClientID != clientID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSubmissionRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, statuses []types.SubmissionStatus, limit int) ([]*types.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.Submission
	for _, s := range r.subs {
		if s.ClientID != clientID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if s.Status == st {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		cp := *s
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) RecentTopics(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]string, error) {
	subs, _ := r.ListByClient(ctx, tx, clientID, []types.SubmissionStatus{types.SubmissionPublished, types.SubmissionScheduled}, limit)
	topics := make([]string, 0, len(subs))
	for _, s := range subs {
		topics = append(topics, s.Title)
	}
	return topics, nil
}

func (r *fakeSubmissionRepo) CountByStatus(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (map[types.SubmissionStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[types.SubmissionStatus]int64)
	for _, s := range r.subs {
		if s.ClientID == clientID {
			out[s.Status]++
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) LatestRelease(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *time.Time
	for _, s := range r.subs {
		if s.ClientID != clientID {
			continue
		}
		if s.Status != types.SubmissionScheduled && s.Status != types.SubmissionPublished {
			continue
		}
		ts := s.UpdatedAt
		if latest == nil || ts.After(*latest) {
			latest = &ts
		}
	}
	return latest, nil
}

func (r *fakeSubmissionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok || s.ClientID != clientID {
		return 0, nil
	}
	applySubmissionUpdates(s, updates)
	s.UpdatedAt = time.Now()
	return 1, nil
}

func applySubmissionUpdates(s *types.Submission, updates map[string]interface{}) {
	for k, v := range updates {
		switch k {
		case "status":
			s.Status = v.(types.SubmissionStatus)
		case "script":
			s.Script = v.(string)
		case "platform_video_id":
			s.PlatformVideoID = v.(string)
		case "release_date":
			if v == nil {
				s.ReleaseDate = nil
			} else if ts, ok := v.(time.Time); ok {
				s.ReleaseDate = &ts
			}
		}
	}
}

type fakeAssetRepo struct {
	mu     sync.Mutex
	assets []*types.Asset
}

func newFakeAssetRepo() *fakeAssetRepo { return &fakeAssetRepo{} }

func (r *fakeAssetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = append(r.assets, assets...)
	return assets, nil
}

func (r *fakeAssetRepo) GetBySubmissionID(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID) ([]*types.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.Asset
	for _, a := range r.assets {
		if a.ClientID == clientID && a.SubmissionID == submissionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) HasKind(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID, kind string) (bool, error) {
	assets, _ := r.GetBySubmissionID(ctx, tx, clientID, submissionID)
	for _, a := range assets {
		if a.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

type fakeIdeaRepo struct {
	mu    sync.Mutex
	ideas map[uuid.UUID]*types.FvsIdea
}

func newFakeIdeaRepo() *fakeIdeaRepo {
	return &fakeIdeaRepo{ideas: make(map[uuid.UUID]*types.FvsIdea)}
}

func (r *fakeIdeaRepo) Create(ctx context.Context, tx *gorm.DB, ideas []*types.FvsIdea) ([]*types.FvsIdea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range ideas {
		cp := *i
		r.ideas[i.ID] = &cp
	}
	return ideas, nil
}

func (r *fakeIdeaRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.FvsIdea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.ideas[id]
	if !ok || i.ClientID != clientID {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *fakeIdeaRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, status types.IdeaStatus, limit int) ([]*types.FvsIdea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.FvsIdea
	for _, i := range r.ideas {
		if i.ClientID != clientID {
			continue
		}
		if status != "" && i.Status != status {
			continue
		}
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeIdeaRepo) UpdateFields(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.ideas[id]
	if !ok || i.ClientID != clientID {
		return 0, nil
	}
	if v, ok := updates["status"]; ok {
		i.Status = v.(types.IdeaStatus)
	}
	return 1, nil
}

type fakeScoreRepo struct {
	mu     sync.Mutex
	scores map[uuid.UUID]*types.BrainScore
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: make(map[uuid.UUID]*types.BrainScore)}
}

func (r *fakeScoreRepo) Create(ctx context.Context, tx *gorm.DB, scores []*types.BrainScore) ([]*types.BrainScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range scores {
		cp := *s
		r.scores[s.ID] = &cp
	}
	return scores, nil
}

func (r *fakeScoreRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.BrainScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.BrainScore
	for _, s := range r.scores {
		if s.ClientID == clientID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeScoreRepo) ListPending(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.BrainScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.BrainScore
	for _, s := range r.scores {
		if s.PerformanceVerdict != types.VerdictPending {
			continue
		}
		if clientID != uuid.Nil && s.ClientID != clientID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeScoreRepo) ListScoredSince(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, since time.Time) ([]*types.BrainScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.BrainScore
	for _, s := range r.scores {
		if s.ClientID != clientID || s.PerformanceVerdict == types.VerdictPending {
			continue
		}
		if s.ScoredAt == nil || s.ScoredAt.Before(since) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeScoreRepo) AccuracyByClient(ctx context.Context, tx *gorm.DB, limit int) ([]repos.ClientAccuracy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := make(map[uuid.UUID]*repos.ClientAccuracy)
	for _, s := range r.scores {
		row, ok := agg[s.ClientID]
		if !ok {
			row = &repos.ClientAccuracy{ClientID: s.ClientID}
			agg[s.ClientID] = row
		}
		row.Total++
		if s.PerformanceVerdict != types.VerdictPending {
			row.Scored++
		}
		if s.PerformanceVerdict == types.VerdictCorrect {
			row.Correct++
		}
	}
	out := make([]repos.ClientAccuracy, 0, len(agg))
	for _, row := range agg {
		out = append(out, *row)
	}
	return out, nil
}

func (r *fakeScoreRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scores[id]
	if !ok {
		return 0, nil
	}
	for k, v := range updates {
		switch k {
		case "performance_verdict":
			s.PerformanceVerdict = v.(string)
		case "verdict_reasoning":
			s.VerdictReasoning = v.(string)
		case "scored_at":
			ts := v.(time.Time)
			s.ScoredAt = &ts
		case "actual_views":
			n := v.(int64)
			s.ActualViews = &n
		case "actual_likes":
			n := v.(int64)
			s.ActualLikes = &n
		}
	}
	return 1, nil
}

type fakeRecRepo struct {
	mu   sync.Mutex
	recs map[uuid.UUID]*types.Recommendation
}

func newFakeRecRepo() *fakeRecRepo {
	return &fakeRecRepo{recs: make(map[uuid.UUID]*types.Recommendation)}
}

func (r *fakeRecRepo) Create(ctx context.Context, tx *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range recs {
		cp := *rec
		r.recs[rec.ID] = &cp
	}
	return recs, nil
}

func (r *fakeRecRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[id]
	if !ok || rec.ClientID != clientID {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.Recommendation
	for _, rec := range r.recs {
		if rec.ClientID == clientID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*types.PublishingTask
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*types.PublishingTask)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.PublishingTask) ([]*types.PublishingTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, task := range tasks {
		cp := *task
		r.tasks[task.ID] = &cp
	}
	return tasks, nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID, id uuid.UUID) (*types.PublishingTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.ClientID != clientID {
		return nil, nil
	}
	cp := *task
	return &cp, nil
}

func (r *fakeTaskRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.PublishingTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.PublishingTask
	for _, task := range r.tasks {
		if task.ClientID == clientID {
			cp := *task
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListDue(ctx context.Context, tx *gorm.DB, now, staleBefore time.Time, limit int) ([]*types.PublishingTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.PublishingTask
	for _, task := range r.tasks {
		due := task.Status == types.TaskScheduled && task.ScheduledAt != nil && !task.ScheduledAt.After(now)
		stale := task.Status == types.TaskPosting && task.UpdatedAt.Before(staleBefore)
		if due || stale {
			cp := *task
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ClaimForPosting(ctx context.Context, tx *gorm.DB, id uuid.UUID, staleBefore time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return false, nil
	}
	stale := task.Status == types.TaskPosting && task.UpdatedAt.Before(staleBefore)
	if task.Status != types.TaskScheduled && !stale {
		return false, nil
	}
	task.Status = types.TaskPosting
	task.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeTaskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return 0, nil
	}
	for k, v := range updates {
		switch k {
		case "status":
			task.Status = v.(types.TaskStatus)
		case "error_message":
			task.ErrorMessage = v.(string)
		case "platform_post_id":
			task.PlatformPostID = v.(string)
		case "posted_at":
			ts := v.(time.Time)
			task.PostedAt = &ts
		case "scheduled_at":
			if v == nil {
				task.ScheduledAt = nil
			} else if ts, ok := v.(time.Time); ok {
				task.ScheduledAt = &ts
			}
		}
	}
	task.UpdatedAt = time.Now()
	return 1, nil
}

func (r *fakeTaskRepo) set(task *types.PublishingTask) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *task
	r.tasks[task.ID] = &cp
}

func (r *fakeTaskRepo) get(id uuid.UUID) *types.PublishingTask {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil
	}
	cp := *task
	return &cp
}

type fakeConnRepo struct {
	mu    sync.Mutex
	conns map[string]*types.PlatformConnection
}

func newFakeConnRepo() *fakeConnRepo {
	return &fakeConnRepo{conns: make(map[string]*types.PlatformConnection)}
}

func connKey(clientID uuid.UUID, platform string) string {
	return clientID.String() + "/" + platform
}

func (r *fakeConnRepo) Get(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, platform string) (*types.PlatformConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn, ok := r.conns[connKey(clientID, platform)]
	if !ok {
		return nil, nil
	}
	cp := *conn
	return &cp, nil
}

func (r *fakeConnRepo) Upsert(ctx context.Context, tx *gorm.DB, conn *types.PlatformConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *conn
	r.conns[connKey(conn.ClientID, conn.Platform)] = &cp
	return nil
}

type fakeSnapshotRepo struct {
	mu    sync.Mutex
	snaps []*types.BrainSnapshot
}

func newFakeSnapshotRepo() *fakeSnapshotRepo { return &fakeSnapshotRepo{} }

func (r *fakeSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snap *types.BrainSnapshot) (*types.BrainSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
	return snap, nil
}

func (r *fakeSnapshotRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.BrainSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.BrainSnapshot
	for _, s := range r.snaps {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*types.ActivityLog
}

func newFakeActivityRepo() *fakeActivityRepo { return &fakeActivityRepo{} }

func (r *fakeActivityRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.ActivityLog) ([]*types.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
	return entries, nil
}

type fakeAnalyticsRepo struct {
	mu      sync.Mutex
	latest  map[uuid.UUID]*types.AnalyticsSnapshot
	summary repos.AnalyticsSummary
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{latest: make(map[uuid.UUID]*types.AnalyticsSnapshot)}
}

func (r *fakeAnalyticsRepo) LatestBySubmissionID(ctx context.Context, tx *gorm.DB, clientID, submissionID uuid.UUID) (*types.AnalyticsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap, ok := r.latest[submissionID]
	if !ok || snap.ClientID != clientID {
		return nil, nil
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeAnalyticsRepo) SummarizeWindow(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, since time.Time) (*repos.AnalyticsSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := r.summary
	return &cp, nil
}

type fakeSignalRepo struct {
	mu      sync.Mutex
	signals []*types.TrendSignal
	failOn  string
}

func newFakeSignalRepo() *fakeSignalRepo { return &fakeSignalRepo{} }

func (r *fakeSignalRepo) Create(ctx context.Context, tx *gorm.DB, signals []*types.TrendSignal) ([]*types.TrendSignal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != "" {
		for _, s := range signals {
			if s.Source == r.failOn {
				return nil, errStoreDown
			}
		}
	}
	r.signals = append(r.signals, signals...)
	return signals, nil
}

func (r *fakeSignalRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, source string, limit int) ([]*types.TrendSignal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.TrendSignal
	for _, s := range r.signals {
		if s.ClientID != clientID {
			continue
		}
		if source != "" && s.Source != source {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// =========================
// collaborator fakes
// =========================

type recordingEmitter struct {
	mu       sync.Mutex
	messages []sse.SSEMessage
}

func (e *recordingEmitter) Emit(ctx context.Context, msg sse.SSEMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, msg)
}

func (e *recordingEmitter) byEvent(event sse.SSEEvent) []sse.SSEMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []sse.SSEMessage
	for _, m := range e.messages {
		if m.Event == event {
			out = append(out, m)
		}
	}
	return out
}

type recordingSink struct {
	mu      sync.Mutex
	created []string
}

func (s *recordingSink) CreateNotification(ctx context.Context, clientID uuid.UUID, notifType, title, message, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, notifType)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

type fakePublisher struct {
	mu    sync.Mutex
	calls []PublishRequest
	err   error
}

func (p *fakePublisher) Publish(ctx context.Context, req PublishRequest) (PublishResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, req)
	if p.err != nil {
		return PublishResult{}, p.err
	}
	return PublishResult{PlatformPostID: "post-" + req.Task.ID.String()}, nil
}

func (p *fakePublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type fakeGenerator struct {
	candidates []IdeaCandidate
	err        error
	calls      int
}

func (g *fakeGenerator) GenerateIdeas(ctx context.Context, ideaCtx IdeaContext) ([]IdeaCandidate, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.candidates, nil
}

type failingTrendSource struct {
	failCompetitors bool
	failTopics      bool
}

func (t *failingTrendSource) ScanCompetitors(ctx context.Context, clientID uuid.UUID) ([]*types.TrendSignal, error) {
	if t.failCompetitors {
		return nil, errStoreDown
	}
	return []*types.TrendSignal{{ID: uuid.New(), ClientID: clientID, Source: "competitor", Topic: "x", Score: 0.5}}, nil
}

func (t *failingTrendSource) ScanTrendingTopics(ctx context.Context, clientID uuid.UUID) ([]*types.TrendSignal, error) {
	if t.failTopics {
		return nil, errStoreDown
	}
	return []*types.TrendSignal{{ID: uuid.New(), ClientID: clientID, Source: "trending", Topic: "y", Score: 0.4}}, nil
}

var errStoreDown = errSentinel("store down")

type errSentinel string

func (e errSentinel) Error() string { return string(e) }
