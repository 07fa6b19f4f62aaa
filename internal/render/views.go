package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devin-hart/coinmage/internal/model"
)

// Rule is the horizontal separator used around views.
var Rule = strings.Repeat("─", 78)

// Detail renders the single-asset view.
func Detail(d model.AssetDetail, marker string, p Palette) string {
	symbol := strings.ToUpper(d.Symbol)
	change, class := FormatPercent(d.PriceChange24hPc)

	rank := Placeholder
	if d.Rank > 0 {
		rank = strconv.Itoa(d.Rank)
	}

	supply := FormatAmount(d.CirculatingSupply, "")
	if supply != Placeholder {
		supply += " " + symbol
	}

	var b strings.Builder
	fmt.Fprintln(&b, Rule)
	fmt.Fprintf(&b, "%s (%s)\n", p.Bold(d.Name), symbol)
	fmt.Fprintln(&b, Rule)
	fmt.Fprintf(&b, "Rank:               %s\n", rank)
	fmt.Fprintf(&b, "Price:              %s\n", p.Class(Positive, FormatOptionalPrice(d.CurrentPrice, marker)))
	fmt.Fprintf(&b, "24h Change:         %s\n", p.Class(class, change))
	fmt.Fprintf(&b, "Market Cap:         %s\n", FormatAmount(d.MarketCap, marker))
	fmt.Fprintf(&b, "Volume (24h):       %s\n", FormatAmount(d.Volume24h, marker))
	fmt.Fprintf(&b, "Circulating Supply: %s\n", supply)
	fmt.Fprintln(&b, Rule)
	return b.String()
}

// Top renders a ranked list of markets with prices.
func Top(snaps []model.MarketSnapshot, marker string, p Palette) string {
	var b strings.Builder
	fmt.Fprintln(&b, Rule)
	for i, s := range snaps {
		fmt.Fprintf(&b, "%d. %s (%s) %s\n",
			i+1,
			p.Bold(s.Name),
			strings.ToUpper(s.Symbol),
			FormatOptionalPrice(s.CurrentPrice, marker),
		)
	}
	fmt.Fprintln(&b, Rule)
	return b.String()
}

// Trending renders the trending list with market cap ranks.
func Trending(list []model.TrendingAsset, p Palette) string {
	var b strings.Builder
	fmt.Fprintln(&b, Rule)
	for i, t := range list {
		rank := Placeholder
		if t.Rank > 0 {
			rank = strconv.Itoa(t.Rank)
		}
		fmt.Fprintf(&b, "%d. %s (%s) Rank: %s\n",
			i+1,
			p.Bold(t.Name),
			strings.ToUpper(t.Symbol),
			rank,
		)
	}
	fmt.Fprintln(&b, Rule)
	return b.String()
}
