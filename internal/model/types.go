package model

import "time"

// -----------------------------------------------------------------------------
// Catalog Types
// -----------------------------------------------------------------------------

// AssetRecord is one entry of the provider's full asset catalog. Immutable once fetched.
type AssetRecord struct {
	ID     string // Canonical unique ID (e.g. "bitcoin")
	Symbol string // Ticker (e.g. "btc"), not unique
	Name   string // Display name (e.g. "Bitcoin")
}

// -----------------------------------------------------------------------------
// Market Types
// -----------------------------------------------------------------------------

// Window is a price change percentage window understood by the markets endpoint.
type Window string

// Percentage change windows requested by a watch session.
const (
	Window1h  Window = "1h"
	Window24h Window = "24h"
	Window7d  Window = "7d"
	Window30d Window = "30d"
)

// WatchWindows is the fixed, ordered set of windows shown in the watch table.
var WatchWindows = []Window{Window1h, Window24h, Window7d, Window30d}

// MarketSnapshot is the current market state of one asset.
type MarketSnapshot struct {
	ID            string
	Name          string
	Symbol        string
	Rank          int
	CurrentPrice  *float64
	MarketCap     *float64
	Volume24h     *float64
	PriceChangePc map[Window]*float64 // Change percentage per requested window
	FetchedAt     time.Time
}

// Change returns the change percentage for window w, or nil when not reported.
func (s MarketSnapshot) Change(w Window) *float64 {
	if s.PriceChangePc == nil {
		return nil
	}
	return s.PriceChangePc[w]
}

// AssetDetail is the single-asset view shown by a coin lookup.
type AssetDetail struct {
	ID                string
	Name              string
	Symbol            string
	Rank              int
	CurrentPrice      *float64
	PriceChange24hPc  *float64
	MarketCap         *float64
	Volume24h         *float64
	CirculatingSupply *float64
}

// TrendingAsset is one entry of the provider's trending search list.
type TrendingAsset struct {
	ID     string
	Name   string
	Symbol string
	Rank   int // Market cap rank, 0 when unranked
}
