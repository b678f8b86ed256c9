package services

import (
	"context"

	"github.com/fvstudio/fvs-backend/internal/sse"
)

type SSEEmitter interface {
	Emit(ctx context.Context, msg sse.SSEMessage)
}

// HubEmitter delivers straight to the in-process hub.
type HubEmitter struct{ Hub *sse.SSEHub }

func (e *HubEmitter) Emit(ctx context.Context, msg sse.SSEMessage) {
	e.Hub.Broadcast(msg)
}

// BusEmitter publishes through the redis bridge so every replica's hub
// sees the event.
type BusEmitter struct{ Bus SSEBus }

func (e *BusEmitter) Emit(ctx context.Context, msg sse.SSEMessage) {
	_ = e.Bus.Publish(ctx, msg)
}
