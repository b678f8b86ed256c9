package sse

import (
	"testing"
	"time"

	"github.com/google/uuid"

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

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestHubBroadcastOrdering(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t), 8)
	channel := uuid.New().String()

	conn := hub.NewSSEClient(uuid.New())
	hub.AddChannel(conn, channel)

	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventScanStarted, Data: map[string]any{"seq": 1}})
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventScanComplete, Data: map[string]any{"seq": 2}})

	first := recvMessage(t, conn.Outbound, time.Second)
	second := recvMessage(t, conn.Outbound, time.Second)
	if first.Event != SSEEventScanStarted {
		t.Fatalf("first event: want=%s got=%s", SSEEventScanStarted, first.Event)
	}
	if second.Event != SSEEventScanComplete {
		t.Fatalf("second event: want=%s got=%s", SSEEventScanComplete, second.Event)
	}
}

func TestHubDropsWhenQueueFull(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t), 2)
	channel := uuid.New().String()

	conn := hub.NewSSEClient(uuid.New())
	hub.AddChannel(conn, channel)

	for i := 0; i < 5; i++ {
		hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventPipelineAdvanced, Data: map[string]any{"seq": i}})
	}

	// Only the first two fit; broadcasting the rest must not block.
	if got := len(conn.Outbound); got != 2 {
		t.Fatalf("queued messages: want=2 got=%d", got)
	}
}

func TestHubNoSubscriberIsSilentDrop(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t), 4)
	// No connections registered; must not panic or block.
	hub.Broadcast(SSEMessage{Channel: uuid.New().String(), Event: SSEEventPublishPosted})
}

func TestHubCloseClientTwiceIsHarmless(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t), 4)
	conn := hub.NewSSEClient(uuid.New())
	hub.AddChannel(conn, uuid.New().String())

	hub.CloseClient(conn)
	// A second close must not panic on the already-closed channels.
	hub.CloseClient(conn)
}

func TestHubDisconnectUnregistersOnlyThatQueue(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t), 4)
	channel := uuid.New().String()

	tabA := hub.NewSSEClient(uuid.New())
	tabB := hub.NewSSEClient(uuid.New())
	hub.AddChannel(tabA, channel)
	hub.AddChannel(tabB, channel)

	hub.CloseClient(tabA)

	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventPublishFailed})
	msg := recvMessage(t, tabB.Outbound, time.Second)
	if msg.Event != SSEEventPublishFailed {
		t.Fatalf("tabB event: want=%s got=%s", SSEEventPublishFailed, msg.Event)
	}

	select {
	case _, ok := <-tabA.Outbound:
		if ok {
			t.Fatalf("tabA outbound should be closed after disconnect")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for tabA channel close")
	}
}
