package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devin-hart/coinmage/internal/model"
)

func TestListCoins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/list" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/coins/list")
		}
		json.NewEncoder(w).Encode([]APICoin{
			{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
			{ID: "", Symbol: "bad", Name: "No ID"},
			{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	coins, err := c.ListCoins(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coins) != 2 {
		t.Fatalf("len(coins) = %d, want 2", len(coins))
	}
	if coins[0].ID != "bitcoin" || coins[1].ID != "ethereum" {
		t.Errorf("coins = %+v, want bitcoin then ethereum", coins)
	}
}

func TestGetMarkets(t *testing.T) {
	t.Run("batched request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/coins/markets" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/coins/markets")
			}
			q := r.URL.Query()
			if q.Get("ids") != "bitcoin,ethereum" {
				t.Errorf("ids = %q, want %q", q.Get("ids"), "bitcoin,ethereum")
			}
			if q.Get("vs_currency") != "eur" {
				t.Errorf("vs_currency = %q, want %q", q.Get("vs_currency"), "eur")
			}
			if q.Get("price_change_percentage") != "1h,24h,7d,30d" {
				t.Errorf("price_change_percentage = %q, want %q", q.Get("price_change_percentage"), "1h,24h,7d,30d")
			}
			w.Write([]byte(`[
				{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":65000.5,"market_cap_rank":1,
				 "price_change_percentage_1h_in_currency":0.1,"price_change_percentage_24h_in_currency":-1.25,
				 "price_change_percentage_7d_in_currency":3.5,"price_change_percentage_30d_in_currency":null},
				{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":null}
			]`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		snaps, err := c.GetMarkets(context.Background(), MarketsOptions{
			IDs:        []string{"bitcoin", "ethereum"},
			VsCurrency: "eur",
			Windows:    model.WatchWindows,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snaps) != 2 {
			t.Fatalf("len(snaps) = %d, want 2", len(snaps))
		}

		btc := snaps[0]
		if btc.CurrentPrice == nil || *btc.CurrentPrice != 65000.5 {
			t.Errorf("CurrentPrice = %v, want 65000.5", btc.CurrentPrice)
		}
		if btc.Rank != 1 {
			t.Errorf("Rank = %d, want 1", btc.Rank)
		}
		if got := btc.Change(model.Window24h); got == nil || *got != -1.25 {
			t.Errorf("Change(24h) = %v, want -1.25", got)
		}
		if got := btc.Change(model.Window30d); got != nil {
			t.Errorf("Change(30d) = %v, want nil", *got)
		}

		eth := snaps[1]
		if eth.CurrentPrice != nil {
			t.Errorf("CurrentPrice = %v, want nil", *eth.CurrentPrice)
		}
		if eth.Rank != 0 {
			t.Errorf("Rank = %d, want 0", eth.Rank)
		}
	})

	t.Run("default currency", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("vs_currency"); got != "usd" {
				t.Errorf("vs_currency = %q, want %q", got, "usd")
			}
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		if _, err := c.GetMarkets(context.Background(), MarketsOptions{IDs: []string{"bitcoin"}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("error is a FetchError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL, "", WithRetries(0, time.Millisecond))
		_, err := c.GetMarkets(context.Background(), MarketsOptions{IDs: []string{"bitcoin"}})
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if fetchErr.Op != "get markets" {
			t.Errorf("Op = %q, want %q", fetchErr.Op, "get markets")
		}
	})
}

func TestGetTopMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("order") != "market_cap_desc" {
			t.Errorf("order = %q, want %q", q.Get("order"), "market_cap_desc")
		}
		if q.Get("per_page") != "10" {
			t.Errorf("per_page = %q, want %q", q.Get("per_page"), "10")
		}
		if q.Get("page") != "1" {
			t.Errorf("page = %q, want %q", q.Get("page"), "1")
		}
		if q.Get("ids") != "" {
			t.Errorf("ids = %q, want empty", q.Get("ids"))
		}
		w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":1}]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	snaps, err := c.GetTopMarkets(context.Background(), "usd", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("len(snaps) = %d, want 1", len(snaps))
	}
}

func TestGetCoin(t *testing.T) {
	t.Run("detail in requested currency", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/coins/bitcoin" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/coins/bitcoin")
			}
			if r.URL.Query().Get("tickers") != "false" {
				t.Errorf("tickers = %q, want %q", r.URL.Query().Get("tickers"), "false")
			}
			w.Write([]byte(`{"id":"bitcoin","symbol":"btc","name":"Bitcoin","market_cap_rank":1,
				"market_data":{"current_price":{"usd":65000,"eur":60000},"market_cap":{"usd":1.2e12},
				"total_volume":{"usd":3.1e10},"price_change_percentage_24h":2.1,"circulating_supply":19700000}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		d, err := c.GetCoin(context.Background(), "bitcoin", "EUR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.CurrentPrice == nil || *d.CurrentPrice != 60000 {
			t.Errorf("CurrentPrice = %v, want 60000", d.CurrentPrice)
		}
		if d.MarketCap != nil {
			t.Errorf("MarketCap = %v, want nil (no eur entry)", *d.MarketCap)
		}
		if d.CirculatingSupply == nil || *d.CirculatingSupply != 19700000 {
			t.Errorf("CirculatingSupply = %v, want 19700000", d.CirculatingSupply)
		}
		if d.Rank != 1 {
			t.Errorf("Rank = %d, want 1", d.Rank)
		}
	})

	t.Run("missing market data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"ghost","symbol":"gho","name":"Ghost"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		_, err := c.GetCoin(context.Background(), "ghost", "usd")
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
	})
}

func TestGetTrending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/trending" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/search/trending")
		}
		w.Write([]byte(`{"coins":[
			{"item":{"id":"pepe","name":"Pepe","symbol":"PEPE","market_cap_rank":30}},
			{"item":{"id":"newcoin","name":"New Coin","symbol":"NEW","market_cap_rank":null}}
		]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	trending, err := c.GetTrending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("len(trending) = %d, want 2", len(trending))
	}
	if trending[0].Rank != 30 {
		t.Errorf("trending[0].Rank = %d, want 30", trending[0].Rank)
	}
	if trending[1].Rank != 0 {
		t.Errorf("trending[1].Rank = %d, want 0", trending[1].Rank)
	}
}
