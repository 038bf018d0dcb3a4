package resolver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/models"
)

const (
	SourceLive = "live"
	SourceMock = "mock"
)

// Resolver maps a ticker symbol to a current price. Every call
// re-resolves; nothing is cached between invocations.
type Resolver interface {
	Resolve(ctx context.Context, symbol string) (models.Quote, error)
}

var (
	ErrSymbolRequired   = errors.New("symbol required")
	ErrPriceUnavailable = errors.New("price not available")
)

// ProviderError wraps a live-provider transport or protocol failure.
type ProviderError struct {
	Symbol string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider lookup for %s failed: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// for deterministic jitter in tests
type Rand interface {
	Float64() float64
}

// Doer abstracts the HTTP client used by the live resolver
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RealRand serves concurrent Resolve calls, so the underlying
// *rand.Rand (not safe for concurrent use) is guarded by a mutex.
type RealRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRealRand() *RealRand {
	return &RealRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *RealRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}
