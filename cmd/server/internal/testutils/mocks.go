package testutils

import (
	"context"
	"sync"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/models"
)

// MockRand pins the jitter component of the mock resolver
type MockRand struct {
	Val float64
}

func (m MockRand) Float64() float64 { return m.Val }

// MockResolver returns a scripted quote or error and records the symbols asked for
type MockResolver struct {
	Quote models.Quote
	Err   error

	Symbols []string
	Mu      sync.Mutex
}

func (m *MockResolver) Resolve(_ context.Context, symbol string) (models.Quote, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.Symbols = append(m.Symbols, symbol)
	if m.Err != nil {
		return models.Quote{}, m.Err
	}
	return m.Quote, nil
}

// MockFeed records published quotes
type MockFeed struct {
	Published []models.Quote
	Err       error
	Mu        sync.Mutex
}

func (m *MockFeed) Publish(_ context.Context, q models.Quote) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Published = append(m.Published, q)
	return nil
}

func (m *MockFeed) Close() error { return nil }
