package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ScanState string

const (
	ScanIdle     ScanState = "idle"
	ScanScanning ScanState = "scanning"
	ScanComplete ScanState = "complete"
	ScanError    ScanState = "error"
)

type ScanStatus struct {
	State     ScanState `json:"state"`
	Stage     string    `json:"stage,omitempty"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ScanStatusStore tracks at most one scan record per client,
// last-writer-wins. The in-memory implementation is process-scoped with
// no persistence across restarts; the redis one can back a shared
// deployment without changing call sites.
type ScanStatusStore interface {
	Get(ctx context.Context, clientID uuid.UUID) (ScanStatus, error)
	Set(ctx context.Context, clientID uuid.UUID, status ScanStatus) error
}

type memoryScanStatusStore struct {
	mu       sync.RWMutex
	statuses map[uuid.UUID]ScanStatus
}

func NewMemoryScanStatusStore() ScanStatusStore {
	return &memoryScanStatusStore{statuses: make(map[uuid.UUID]ScanStatus)}
}

func (s *memoryScanStatusStore) Get(ctx context.Context, clientID uuid.UUID) (ScanStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.statuses[clientID]
	if !ok {
		return ScanStatus{State: ScanIdle}, nil
	}
	return status, nil
}

func (s *memoryScanStatusStore) Set(ctx context.Context, clientID uuid.UUID, status ScanStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[clientID] = status
	return nil
}

type redisScanStatusStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisScanStatusStore(rdb *redis.Client) ScanStatusStore {
	return &redisScanStatusStore{rdb: rdb, ttl: 24 * time.Hour}
}

func scanStatusKey(clientID uuid.UUID) string {
	return "scan_status:" + clientID.String()
}

func (s *redisScanStatusStore) Get(ctx context.Context, clientID uuid.UUID) (ScanStatus, error) {
	raw, err := s.rdb.Get(ctx, scanStatusKey(clientID)).Bytes()
	if err == redis.Nil {
		return ScanStatus{State: ScanIdle}, nil
	}
	if err != nil {
		return ScanStatus{}, err
	}
	var status ScanStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return ScanStatus{State: ScanIdle}, nil
	}
	return status, nil
}

func (s *redisScanStatusStore) Set(ctx context.Context, clientID uuid.UUID, status ScanStatus) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, scanStatusKey(clientID), raw, s.ttl).Err()
}
