package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/models"
)

// Doer abstracts the HTTP client for testing
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError carries a server-reported rejection (e.g. a validation failure).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Controller keeps a local copy of the server's holdings and orchestrates
// create, clear and batched price refresh against the API.
type Controller struct {
	client  Doer
	baseURL string
	logger  *zap.Logger

	mu       sync.Mutex
	holdings []models.Holding
}

func NewController(client Doer, baseURL string, logger *zap.Logger) *Controller {
	return &Controller{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Holdings returns a snapshot copy of the local cache.
func (c *Controller) Holdings() []models.Holding {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Holding, len(c.holdings))
	copy(out, c.holdings)
	return out
}

// LoadAll replaces the local cache with the server's full holdings list.
// Any failure resets the cache to empty rather than leaving stale rows
// that look fresh.
func (c *Controller) LoadAll(ctx context.Context) error {
	var holdings []models.Holding
	err := c.getJSON(ctx, "/api/holdings", &holdings)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.holdings = nil
		return err
	}
	c.holdings = holdings
	return nil
}

// AddHolding submits a create request and appends the server-returned
// holding to the cache. The server's response is the source of truth for
// the id and normalized fields. On failure the cache is left unchanged.
func (c *Controller) AddHolding(ctx context.Context, symbol string, quantity float64, avgPrice *float64) (models.Holding, error) {
	reqBody := struct {
		Symbol   string   `json:"symbol"`
		Quantity float64  `json:"quantity"`
		AvgPrice *float64 `json:"avgPrice"`
	}{Symbol: symbol, Quantity: quantity, AvgPrice: avgPrice}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return models.Holding{}, fmt.Errorf("marshal create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/holdings", bytes.NewReader(payload))
	if err != nil {
		return models.Holding{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Holding{}, fmt.Errorf("create holding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return models.Holding{}, c.apiError(resp)
	}

	var created models.Holding
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return models.Holding{}, fmt.Errorf("decode created holding: %w", err)
	}

	c.mu.Lock()
	c.holdings = append(c.holdings, created)
	c.mu.Unlock()

	return created, nil
}

// RefreshPrices resolves every cached holding's price concurrently. A
// failed lookup only nils out that holding's CurrentPrice; the cache is
// swapped in one step after the whole batch settles.
func (c *Controller) RefreshPrices(ctx context.Context) {
	c.mu.Lock()
	snapshot := make([]models.Holding, len(c.holdings))
	copy(snapshot, c.holdings)
	c.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}

	refreshed := make([]models.Holding, len(snapshot))
	var wg sync.WaitGroup

	for i, h := range snapshot {
		wg.Add(1)
		go func(i int, h models.Holding) {
			defer wg.Done()

			var quote models.Quote
			err := c.getJSON(ctx, "/api/price?symbol="+url.QueryEscape(h.Symbol), &quote)
			if err != nil {
				c.logger.Warn("Price refresh failed", zap.String("symbol", h.Symbol), zap.Error(err))
				h.CurrentPrice = nil
			} else {
				price := quote.Price
				h.CurrentPrice = &price
			}
			refreshed[i] = h
		}(i, h)
	}
	wg.Wait()

	c.mu.Lock()
	c.holdings = refreshed
	c.mu.Unlock()
}

// ClearAll asks the server to drop everything. The cache is emptied only
// on a confirmed clear; an unconfirmed one leaves local data intact.
func (c *Controller) ClearAll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/holdings/clear", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("clear holdings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}

	c.mu.Lock()
	c.holdings = nil
	c.mu.Unlock()
	return nil
}

func (c *Controller) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Controller) apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}
