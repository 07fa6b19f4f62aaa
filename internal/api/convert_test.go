package api

import (
	"testing"
	"time"

	"github.com/devin-hart/coinmage/internal/model"
)

func TestAPIMarket_ToModel(t *testing.T) {
	price := 1.5
	h1 := 0.25
	d7 := -4.0
	rank := 12
	fetchedAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	m := APIMarket{
		ID:            "cardano",
		Symbol:        "ada",
		Name:          "Cardano",
		CurrentPrice:  &price,
		MarketCapRank: &rank,
		PriceChange1h: &h1,
		PriceChange7d: &d7,
	}

	got := m.ToModel(fetchedAt)

	if got.ID != "cardano" || got.Symbol != "ada" || got.Name != "Cardano" {
		t.Errorf("identity = %q/%q/%q", got.ID, got.Symbol, got.Name)
	}
	if got.Rank != 12 {
		t.Errorf("Rank = %d, want 12", got.Rank)
	}
	if !got.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, fetchedAt)
	}
	if len(got.PriceChangePc) != 2 {
		t.Errorf("len(PriceChangePc) = %d, want 2", len(got.PriceChangePc))
	}
	if v := got.Change(model.Window7d); v == nil || *v != -4.0 {
		t.Errorf("Change(7d) = %v, want -4", v)
	}
	if v := got.Change(model.Window24h); v != nil {
		t.Errorf("Change(24h) = %v, want nil", *v)
	}
}

func TestLookupCurrency(t *testing.T) {
	m := map[string]float64{"usd": 1.0, "eur": 0.9}

	tests := []struct {
		vs   string
		want *float64
	}{
		{"usd", ptr(1.0)},
		{"EUR", ptr(0.9)},
		{"gbp", nil},
	}

	for _, tt := range tests {
		t.Run(tt.vs, func(t *testing.T) {
			got := lookupCurrency(m, tt.vs)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("lookupCurrency(%q) = %v, want nil", tt.vs, *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("lookupCurrency(%q) = %v, want %v", tt.vs, got, *tt.want)
			}
		})
	}
}

func ptr(v float64) *float64 {
	return &v
}
