// Package api provides the CoinGecko v3 REST client used by coinmage.
//
// Endpoints:
//   - GET /coins/list        full asset catalog (id, symbol, name)
//   - GET /coins/markets     batched market snapshots with change percentages
//   - GET /coins/{id}        single asset detail
//   - GET /search/trending   trending assets
//
// Public base URL: https://api.coingecko.com/api/v3
package api
