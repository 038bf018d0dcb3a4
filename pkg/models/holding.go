package models

// Holding is one recorded position tracked by the registry.
// AvgPrice stays nil when the caller did not supply a cost basis; zero
// means a free acquisition and is a distinct value. CurrentPrice is a
// transient annotation from the most recent price refresh, nil until the
// first refresh and reset to nil when a lookup fails.
type Holding struct {
	ID           int64    `json:"id"`
	Symbol       string   `json:"symbol"`
	Quantity     float64  `json:"quantity"`
	AvgPrice     *float64 `json:"avgPrice"`
	CurrentPrice *float64 `json:"currentPrice"`
}

// Quote is a single resolved price for a symbol.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Source string  `json:"source"` // "live" or "mock"
}
