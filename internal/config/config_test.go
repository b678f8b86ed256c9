package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fvstudio/fvs-backend/internal/logger"
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

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("POLICY_FILE", "")

	p, err := Load(mustTestLogger(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Default() {
		t.Fatalf("policy: want defaults, got %+v", p)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("POLICY_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	p, err := Load(mustTestLogger(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Default() {
		t.Fatalf("policy: want defaults, got %+v", p)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	raw := []byte("breakout_views: 25000\ndispatch_interval: 10s\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}
	t.Setenv("POLICY_FILE", path)

	p, err := Load(mustTestLogger(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.BreakoutViews != 25000 {
		t.Fatalf("breakout views: want=25000 got=%d", p.BreakoutViews)
	}
	if p.DispatchInterval != 10*time.Second {
		t.Fatalf("dispatch interval: want=10s got=%s", p.DispatchInterval)
	}
	if p.BaselineViews != Default().BaselineViews {
		t.Fatalf("baseline views: want default, got %d", p.BaselineViews)
	}
}

func TestNormalizedRepairsNonPositiveValues(t *testing.T) {
	p := Policy{BreakoutViews: -1, IdeaBatchSize: 99}.normalized()
	if p.BreakoutViews != Default().BreakoutViews {
		t.Fatalf("breakout views: want default, got %d", p.BreakoutViews)
	}
	if p.IdeaBatchSize != Default().IdeaBatchSize {
		t.Fatalf("idea batch size: want clamped to default, got %d", p.IdeaBatchSize)
	}
	if p.PostingStaleAfter != Default().PostingStaleAfter {
		t.Fatalf("posting stale cutoff: want default, got %s", p.PostingStaleAfter)
	}
}
