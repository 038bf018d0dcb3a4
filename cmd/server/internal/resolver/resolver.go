package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/config"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/models"
)

// Compile-time checks that both modes satisfy Resolver
var (
	_ Resolver = (*Mock)(nil)
	_ Resolver = (*Live)(nil)
)

// New picks the live resolver when a provider credential is configured,
// the deterministic mock otherwise. The choice is made once at startup.
func New(cfg config.ProviderConfig) Resolver {
	if cfg.APIKey == "" {
		return NewMock(NewRealRand())
	}

	client := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	return NewLive(client, cfg.BaseURL, cfg.APIKey)
}

// Mock derives a stable base price from the symbol itself and adds a
// small random jitter so repeated quotes look believable. The base for a
// given symbol never changes within a process; only the jitter moves.
type Mock struct {
	rand Rand
}

func NewMock(rnd Rand) *Mock {
	return &Mock{rand: rnd}
}

func (m *Mock) Resolve(_ context.Context, symbol string) (models.Quote, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return models.Quote{}, ErrSymbolRequired
	}

	price := round2(baseFor(s) + m.rand.Float64()*jitterRange)

	return models.Quote{Symbol: s, Price: price, Source: SourceMock}, nil
}

const jitterRange = 5.0

// baseFor folds the symbol's byte values into a price in [20, 220).
func baseFor(symbol string) float64 {
	sum := 0
	for i := 0; i < len(symbol); i++ {
		sum += int(symbol[i])
	}
	return float64(sum%200 + 20)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Live fetches the current price from the upstream quote provider.
// Single attempt per call; retrying is the caller's decision.
type Live struct {
	client  Doer
	baseURL string
	token   string
}

func NewLive(client Doer, baseURL, token string) *Live {
	return &Live{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

func (l *Live) Resolve(ctx context.Context, symbol string) (models.Quote, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return models.Quote{}, ErrSymbolRequired
	}

	reqURL := l.baseURL + "/quote?symbol=" + url.QueryEscape(s) + "&token=" + url.QueryEscape(l.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Quote{}, &ProviderError{Symbol: s, Err: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return models.Quote{}, &ProviderError{Symbol: s, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Quote{}, &ProviderError{Symbol: s, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	// The provider's quote payload carries the current price in "c".
	var body struct {
		C *float64 `json:"c"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Quote{}, &ProviderError{Symbol: s, Err: err}
	}
	if body.C == nil {
		return models.Quote{}, ErrPriceUnavailable
	}

	return models.Quote{Symbol: s, Price: *body.C, Source: SourceLive}, nil
}
