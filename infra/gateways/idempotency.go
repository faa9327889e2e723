package gateways

import (
	"context"
	"sync"

	"github.com/giovaniif/items/protocols"
	"github.com/google/uuid"
)

const (
	statusProcessing = "processing"
	statusSuccess    = "success"
)

type IdempotencyGatewayMemory struct {
	mutex           sync.RWMutex
	idempotencyKeys map[string]*IdempotencyState
}

type IdempotencyState struct {
	Status string
	Result *protocols.IdempotencyKeyResult
}

func NewIdempotencyGatewayMemory() *IdempotencyGatewayMemory {
	return &IdempotencyGatewayMemory{
		idempotencyKeys: make(map[string]*IdempotencyState),
	}
}

func (g *IdempotencyGatewayMemory) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	state, exists := g.idempotencyKeys[idempotencyKey]
	if exists {
		if state.Status == statusSuccess {
			return state.Result, nil
		}

		if state.Status == statusProcessing {
			return nil, protocols.ErrIdempotencyKeyInProgress
		}

		delete(g.idempotencyKeys, idempotencyKey)
	}

	g.idempotencyKeys[idempotencyKey] = &IdempotencyState{
		Status: statusProcessing,
	}
	return nil, nil
}

func (g *IdempotencyGatewayMemory) MarkFailure(ctx context.Context, idempotencyKey string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.idempotencyKeys, idempotencyKey)
	return nil
}

func (g *IdempotencyGatewayMemory) MarkSuccess(ctx context.Context, idempotencyKey string, itemId uuid.UUID) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if state, exists := g.idempotencyKeys[idempotencyKey]; exists {
		state.Status = statusSuccess
		state.Result = &protocols.IdempotencyKeyResult{
			Success: true,
			ItemId:  itemId,
		}
	}

	return nil
}
