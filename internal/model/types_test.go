package model

import "testing"

func TestMarketSnapshot_Change(t *testing.T) {
	up := 2.5

	t.Run("reported window", func(t *testing.T) {
		s := MarketSnapshot{
			ID:            "bitcoin",
			PriceChangePc: map[Window]*float64{Window24h: &up},
		}
		got := s.Change(Window24h)
		if got == nil || *got != 2.5 {
			t.Errorf("Change(24h) = %v, want 2.5", got)
		}
	})

	t.Run("missing window", func(t *testing.T) {
		s := MarketSnapshot{
			ID:            "bitcoin",
			PriceChangePc: map[Window]*float64{Window24h: &up},
		}
		if got := s.Change(Window30d); got != nil {
			t.Errorf("Change(30d) = %v, want nil", *got)
		}
	})

	t.Run("nil map", func(t *testing.T) {
		var s MarketSnapshot
		if got := s.Change(Window1h); got != nil {
			t.Errorf("Change(1h) = %v, want nil", *got)
		}
	})
}

func TestWatchWindows(t *testing.T) {
	want := []Window{"1h", "24h", "7d", "30d"}
	if len(WatchWindows) != len(want) {
		t.Fatalf("len(WatchWindows) = %d, want %d", len(WatchWindows), len(want))
	}
	for i, w := range want {
		if WatchWindows[i] != w {
			t.Errorf("WatchWindows[%d] = %q, want %q", i, WatchWindows[i], w)
		}
	}
}
