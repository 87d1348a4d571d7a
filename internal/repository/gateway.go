package repository

import (
	"context"
	"errors"
	"sync"

	"fridge-service/internal/domain"
)

var (
	// ErrNoSnapshot is returned by Load when nothing has been saved yet
	ErrNoSnapshot = errors.New("no stored snapshot")
	// ErrCorruptSnapshot is returned by Load when stored data cannot be decoded
	ErrCorruptSnapshot = errors.New("stored snapshot is corrupt")
)

// Gateway mirrors the item collection to persistent storage. Save always
// receives the complete collection.
type Gateway interface {
	Load(ctx context.Context) (domain.Collection, error)
	Save(ctx context.Context, items domain.Collection) error
}

// InMemoryGateway keeps the encoded snapshot in memory. It goes through the
// same codec as the durable gateways so round trips behave identically.
type InMemoryGateway struct {
	mu    sync.RWMutex
	data  []byte
	saves int
}

func NewInMemoryGateway() *InMemoryGateway {
	return &InMemoryGateway{}
}

// NewInMemoryGatewayWithData seeds the gateway with raw stored bytes
func NewInMemoryGatewayWithData(data []byte) *InMemoryGateway {
	return &InMemoryGateway{data: data}
}

func (g *InMemoryGateway) Load(ctx context.Context) (domain.Collection, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.data == nil {
		return nil, ErrNoSnapshot
	}
	return DecodeCollection(g.data)
}

func (g *InMemoryGateway) Save(ctx context.Context, items domain.Collection) error {
	data, err := EncodeCollection(items)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.data = data
	g.saves++
	return nil
}

// Saves reports how many times Save succeeded
func (g *InMemoryGateway) Saves() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.saves
}
