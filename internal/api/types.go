package api

import "github.com/devin-hart/coinmage/internal/model"

// APICoin is one entry from GET /coins/list.
type APICoin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// APIMarket is one entry from GET /coins/markets.
// Numeric fields the provider may omit or null are pointers.
type APIMarket struct {
	ID            string   `json:"id"`
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	CurrentPrice  *float64 `json:"current_price"`
	MarketCap     *float64 `json:"market_cap"`
	MarketCapRank *int     `json:"market_cap_rank"`
	TotalVolume   *float64 `json:"total_volume"`

	// Present only for windows requested via price_change_percentage.
	PriceChange1h  *float64 `json:"price_change_percentage_1h_in_currency"`
	PriceChange24h *float64 `json:"price_change_percentage_24h_in_currency"`
	PriceChange7d  *float64 `json:"price_change_percentage_7d_in_currency"`
	PriceChange30d *float64 `json:"price_change_percentage_30d_in_currency"`
}

// CoinDetailResponse from GET /coins/{id}
type CoinDetailResponse struct {
	ID            string         `json:"id"`
	Symbol        string         `json:"symbol"`
	Name          string         `json:"name"`
	MarketCapRank *int           `json:"market_cap_rank"`
	MarketData    *APIMarketData `json:"market_data"`
}

// APIMarketData is the market_data block of a coin detail, keyed by currency.
type APIMarketData struct {
	CurrentPrice             map[string]float64 `json:"current_price"`
	MarketCap                map[string]float64 `json:"market_cap"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	PriceChangePercentage24h *float64           `json:"price_change_percentage_24h"`
	CirculatingSupply        *float64           `json:"circulating_supply"`
}

// TrendingResponse from GET /search/trending
type TrendingResponse struct {
	Coins []struct {
		Item APITrendingCoin `json:"item"`
	} `json:"coins"`
}

// APITrendingCoin is a single trending search hit.
type APITrendingCoin struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank *int   `json:"market_cap_rank"`
}

// MarketsOptions configures a GetMarkets request.
type MarketsOptions struct {
	IDs        []string
	VsCurrency string
	Windows    []model.Window
	Order      string
	PerPage    int
	Page       int
}
