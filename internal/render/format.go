package render

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for values the provider did not report.
const Placeholder = "-"

const (
	smallPriceThreshold = 0.0001
	significantDigits   = 4
)

// Class is the semantic direction of a change, used for styling.
type Class int

const (
	Neutral Class = iota
	Positive
	Negative
)

func (c Class) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// CurrencyMarker returns the prefix used for prices quoted in vsCurrency.
func CurrencyMarker(vsCurrency string) string {
	switch strings.ToLower(vsCurrency) {
	case "", "usd":
		return "$"
	case "eur":
		return "€"
	case "gbp":
		return "£"
	case "jpy":
		return "¥"
	default:
		return strings.ToUpper(vsCurrency) + " "
	}
}

// FormatPrice renders a price with the currency marker:
//   - v >= 1: 2 decimal places
//   - 0.0001 < v < 1: 4 decimal places
//   - 0 < v <= 0.0001: 4 significant digits
//
// Trailing fractional zeros are trimmed; the decimal point is kept.
// Zero and negative values keep 2 fixed decimal places.
func FormatPrice(v float64, marker string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}

	d := decimal.NewFromFloat(v)
	switch {
	case v >= 1:
		return marker + trimFraction(d.StringFixed(2))
	case v > smallPriceThreshold:
		return marker + trimFraction(d.StringFixed(4))
	case v > 0:
		places := int32(significantDigits - 1 - int(math.Floor(math.Log10(v))))
		return marker + trimFraction(d.StringFixed(places))
	default:
		return marker + d.StringFixed(2)
	}
}

// FormatOptionalPrice is FormatPrice for a value that may be missing.
func FormatOptionalPrice(v *float64, marker string) string {
	if v == nil {
		return Placeholder
	}
	return FormatPrice(*v, marker)
}

// FormatPercent renders a change percentage with 2 decimal places and an
// explicit "+" for positive values. Values that round to zero carry no sign.
func FormatPercent(v *float64) (string, Class) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder, Neutral
	}

	d := decimal.NewFromFloat(*v).Round(2)
	switch {
	case d.IsZero():
		return "0.00%", Neutral
	case d.IsPositive():
		return "+" + d.StringFixed(2) + "%", Positive
	default:
		return d.StringFixed(2) + "%", Negative
	}
}

// FormatAmount renders a large quantity (market cap, volume, supply) as a
// whole number with thousands separators.
func FormatAmount(v *float64, marker string) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}

	digits := decimal.NewFromFloat(*v).Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	return sign + marker + groupThousands(digits)
}

// trimFraction drops trailing zeros after the decimal point.
func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimRight(s, "0")
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
