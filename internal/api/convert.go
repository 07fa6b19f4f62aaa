package api

import (
	"strings"
	"time"

	"github.com/devin-hart/coinmage/internal/model"
)

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// derefInt returns *p, or 0 for nil.
func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// lookupCurrency returns a pointer to m[vs], or nil when the currency is absent.
func lookupCurrency(m map[string]float64, vs string) *float64 {
	v, ok := m[strings.ToLower(vs)]
	if !ok {
		return nil
	}
	return &v
}

// ToModel converts an APICoin to model.AssetRecord.
func (c *APICoin) ToModel() model.AssetRecord {
	return model.AssetRecord{
		ID:     c.ID,
		Symbol: c.Symbol,
		Name:   c.Name,
	}
}

// ToModel converts an APIMarket to model.MarketSnapshot.
// Windows the provider did not return stay absent from PriceChangePc.
func (m *APIMarket) ToModel(fetchedAt time.Time) model.MarketSnapshot {
	changes := make(map[model.Window]*float64, 4)
	for w, v := range map[model.Window]*float64{
		model.Window1h:  m.PriceChange1h,
		model.Window24h: m.PriceChange24h,
		model.Window7d:  m.PriceChange7d,
		model.Window30d: m.PriceChange30d,
	} {
		if v != nil {
			changes[w] = v
		}
	}

	return model.MarketSnapshot{
		ID:            m.ID,
		Name:          m.Name,
		Symbol:        m.Symbol,
		Rank:          derefInt(m.MarketCapRank),
		CurrentPrice:  m.CurrentPrice,
		MarketCap:     m.MarketCap,
		Volume24h:     m.TotalVolume,
		PriceChangePc: changes,
		FetchedAt:     fetchedAt,
	}
}

// ToModel converts a CoinDetailResponse to model.AssetDetail priced in vsCurrency.
func (r *CoinDetailResponse) ToModel(vsCurrency string) model.AssetDetail {
	d := model.AssetDetail{
		ID:     r.ID,
		Name:   r.Name,
		Symbol: r.Symbol,
		Rank:   derefInt(r.MarketCapRank),
	}
	if md := r.MarketData; md != nil {
		d.CurrentPrice = lookupCurrency(md.CurrentPrice, vsCurrency)
		d.MarketCap = lookupCurrency(md.MarketCap, vsCurrency)
		d.Volume24h = lookupCurrency(md.TotalVolume, vsCurrency)
		d.PriceChange24hPc = md.PriceChangePercentage24h
		d.CirculatingSupply = md.CirculatingSupply
	}
	return d
}

// ToModel converts an APITrendingCoin to model.TrendingAsset.
func (t *APITrendingCoin) ToModel() model.TrendingAsset {
	return model.TrendingAsset{
		ID:     t.ID,
		Name:   t.Name,
		Symbol: t.Symbol,
		Rank:   derefInt(t.MarketCapRank),
	}
}
