package registry

import (
	"math"
	"strings"
	"sync"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/models"
)

// ValidationError reports a user-correctable problem with a create request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// CreateInput carries raw create parameters. Pointers distinguish an
// absent quantity/avgPrice from an explicit zero.
type CreateInput struct {
	Symbol   string
	Quantity *float64
	AvgPrice *float64
}

// Registry is the single authoritative in-memory collection of holdings.
// Handlers run concurrently, so all access goes through the mutex.
type Registry struct {
	mu       sync.Mutex
	holdings []models.Holding
	nextID   int64
}

func New() *Registry {
	return &Registry{nextID: 1}
}

// Create validates the input, assigns the next sequential id and appends
// the holding. Either the whole operation succeeds or nothing mutates.
func (r *Registry) Create(in CreateInput) (models.Holding, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if symbol == "" {
		return models.Holding{}, &ValidationError{Reason: "symbol required"}
	}

	if in.Quantity == nil {
		return models.Holding{}, &ValidationError{Reason: "quantity required"}
	}
	qty := *in.Quantity
	if qty == 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return models.Holding{}, &ValidationError{Reason: "quantity must be a finite, non-zero number"}
	}

	var avg *float64
	if in.AvgPrice != nil {
		if math.IsNaN(*in.AvgPrice) || math.IsInf(*in.AvgPrice, 0) {
			return models.Holding{}, &ValidationError{Reason: "avgPrice must be a finite number"}
		}
		v := *in.AvgPrice
		avg = &v
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h := models.Holding{
		ID:       r.nextID,
		Symbol:   symbol,
		Quantity: qty,
		AvgPrice: avg,
	}
	r.nextID++
	r.holdings = append(r.holdings, h)

	return h, nil
}

// List returns all holdings in insertion order.
func (r *Registry) List() []models.Holding {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Holding, len(r.holdings))
	copy(out, r.holdings)
	return out
}

// Clear empties the collection and restarts id assignment from 1.
// Acceptable only because nothing persists across restarts anyway.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.holdings = nil
	r.nextID = 1
}

// Len reports the current number of holdings.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.holdings)
}
