package registry_test

import (
	"errors"
	"math"
	"testing"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/server/internal/registry"
)

func fp(v float64) *float64 { return &v }

func TestRegistry_CreateAssignsMonotonicIDs(t *testing.T) {
	reg := registry.New()

	first, err := reg.Create(registry.CreateInput{Symbol: "aapl", Quantity: fp(2)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := reg.Create(registry.CreateInput{Symbol: "msft", Quantity: fp(1)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.ID != 1 {
		t.Errorf("Expected first id 1, got %d", first.ID)
	}
	if second.ID <= first.ID {
		t.Errorf("Expected ids to be strictly increasing, got %d then %d", first.ID, second.ID)
	}
}

func TestRegistry_CreateNormalizesSymbol(t *testing.T) {
	reg := registry.New()

	h, err := reg.Create(registry.CreateInput{Symbol: " aapl ", Quantity: fp(2), AvgPrice: fp(150)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if h.Symbol != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %s", h.Symbol)
	}
	if h.AvgPrice == nil || *h.AvgPrice != 150 {
		t.Errorf("Expected avgPrice 150, got %v", h.AvgPrice)
	}
	if h.CurrentPrice != nil {
		t.Error("CurrentPrice should be nil before the first refresh")
	}
}

func TestRegistry_CreatePreservesAbsentAvgPrice(t *testing.T) {
	reg := registry.New()

	h, err := reg.Create(registry.CreateInput{Symbol: "TSLA", Quantity: fp(3)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Absent cost basis stays null; zero would mean a free acquisition.
	if h.AvgPrice != nil {
		t.Errorf("Expected nil avgPrice, got %v", *h.AvgPrice)
	}
}

func TestRegistry_CreateAllowsDuplicateSymbols(t *testing.T) {
	reg := registry.New()

	// Separate lots of the same symbol are separate holdings.
	if _, err := reg.Create(registry.CreateInput{Symbol: "AAPL", Quantity: fp(1)}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := reg.Create(registry.CreateInput{Symbol: "AAPL", Quantity: fp(2)}); err != nil {
		t.Fatalf("Second lot rejected: %v", err)
	}
	if got := reg.Len(); got != 2 {
		t.Errorf("Expected 2 holdings, got %d", got)
	}
}

func TestRegistry_CreateValidation(t *testing.T) {
	cases := []struct {
		name  string
		input registry.CreateInput
	}{
		{"empty symbol", registry.CreateInput{Symbol: "", Quantity: fp(1)}},
		{"whitespace symbol", registry.CreateInput{Symbol: "   ", Quantity: fp(1)}},
		{"missing quantity", registry.CreateInput{Symbol: "AAPL"}},
		{"zero quantity", registry.CreateInput{Symbol: "AAPL", Quantity: fp(0)}},
		{"nan quantity", registry.CreateInput{Symbol: "AAPL", Quantity: fp(math.NaN())}},
		{"inf quantity", registry.CreateInput{Symbol: "AAPL", Quantity: fp(math.Inf(1))}},
		{"nan avgPrice", registry.CreateInput{Symbol: "AAPL", Quantity: fp(1), AvgPrice: fp(math.NaN())}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := registry.New()

			_, err := reg.Create(tc.input)

			var verr *registry.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if reg.Len() != 0 {
				t.Errorf("Failed create must not append, have %d holdings", reg.Len())
			}
		})
	}
}

func TestRegistry_ListInsertionOrder(t *testing.T) {
	reg := registry.New()

	for _, s := range []string{"AAPL", "MSFT", "TSLA"} {
		if _, err := reg.Create(registry.CreateInput{Symbol: s, Quantity: fp(1)}); err != nil {
			t.Fatalf("Create %s failed: %v", s, err)
		}
	}

	got := reg.List()
	want := []string{"AAPL", "MSFT", "TSLA"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d holdings, got %d", len(want), len(got))
	}
	for i, s := range want {
		if got[i].Symbol != s {
			t.Errorf("Position %d: expected %s, got %s", i, s, got[i].Symbol)
		}
	}
}

func TestRegistry_ListEmpty(t *testing.T) {
	reg := registry.New()

	if got := reg.List(); len(got) != 0 {
		t.Errorf("Expected empty list, got %d holdings", len(got))
	}
}

func TestRegistry_ClearResetsCounter(t *testing.T) {
	reg := registry.New()

	reg.Create(registry.CreateInput{Symbol: "AAPL", Quantity: fp(1)})
	reg.Create(registry.CreateInput{Symbol: "MSFT", Quantity: fp(1)})

	reg.Clear()

	if got := reg.List(); len(got) != 0 {
		t.Fatalf("Expected empty list after clear, got %d", len(got))
	}

	h, err := reg.Create(registry.CreateInput{Symbol: "TSLA", Quantity: fp(1)})
	if err != nil {
		t.Fatalf("Create after clear failed: %v", err)
	}
	if h.ID != 1 {
		t.Errorf("Expected id 1 after clear, got %d", h.ID)
	}
}

func TestRegistry_ClearIdempotent(t *testing.T) {
	reg := registry.New()

	reg.Clear()
	reg.Clear()

	if got := reg.Len(); got != 0 {
		t.Errorf("Expected empty registry, got %d", got)
	}
}
