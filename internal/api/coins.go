package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/devin-hart/coinmage/internal/model"
)

// ListCoins fetches the full asset catalog in provider order.
func (c *Client) ListCoins(ctx context.Context) ([]model.AssetRecord, error) {
	var resp []APICoin
	if err := c.get(ctx, "list coins", "/coins/list", nil, &resp); err != nil {
		return nil, err
	}

	records := make([]model.AssetRecord, 0, len(resp))
	for _, ac := range resp {
		if ac.ID == "" {
			continue
		}
		records = append(records, ac.ToModel())
	}

	return records, nil
}

// GetMarkets fetches market snapshots in one batched request.
func (c *Client) GetMarkets(ctx context.Context, opts MarketsOptions) ([]model.MarketSnapshot, error) {
	query := url.Values{}

	vs := opts.VsCurrency
	if vs == "" {
		vs = "usd"
	}
	query.Set("vs_currency", vs)

	if len(opts.IDs) > 0 {
		query.Set("ids", strings.Join(opts.IDs, ","))
	}
	if len(opts.Windows) > 0 {
		windows := make([]string, len(opts.Windows))
		for i, w := range opts.Windows {
			windows[i] = string(w)
		}
		query.Set("price_change_percentage", strings.Join(windows, ","))
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}

	var resp []APIMarket
	if err := c.get(ctx, "get markets", "/coins/markets", query, &resp); err != nil {
		return nil, err
	}

	fetchedAt := NowUTC()
	snapshots := make([]model.MarketSnapshot, 0, len(resp))
	for i := range resp {
		snapshots = append(snapshots, resp[i].ToModel(fetchedAt))
	}

	return snapshots, nil
}

// GetTopMarkets fetches the first n assets by market cap.
func (c *Client) GetTopMarkets(ctx context.Context, vsCurrency string, n int) ([]model.MarketSnapshot, error) {
	return c.GetMarkets(ctx, MarketsOptions{
		VsCurrency: vsCurrency,
		Order:      "market_cap_desc",
		PerPage:    n,
		Page:       1,
	})
}

// GetCoin fetches the detail view of a single asset, priced in vsCurrency.
func (c *Client) GetCoin(ctx context.Context, id, vsCurrency string) (*model.AssetDetail, error) {
	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("community_data", "false")
	query.Set("developer_data", "false")

	var resp CoinDetailResponse
	if err := c.get(ctx, "get coin "+id, "/coins/"+url.PathEscape(id), query, &resp); err != nil {
		return nil, err
	}
	if resp.MarketData == nil {
		return nil, &FetchError{Op: "get coin " + id, Err: fmt.Errorf("no market data")}
	}

	d := resp.ToModel(vsCurrency)
	return &d, nil
}

// GetTrending fetches the provider's trending assets.
func (c *Client) GetTrending(ctx context.Context) ([]model.TrendingAsset, error) {
	var resp TrendingResponse
	if err := c.get(ctx, "get trending", "/search/trending", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]model.TrendingAsset, 0, len(resp.Coins))
	for _, hit := range resp.Coins {
		out = append(out, hit.Item.ToModel())
	}
	return out, nil
}
