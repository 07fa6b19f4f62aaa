package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/devin-hart/coinmage/internal/model"
)

// TableOptions controls snapshot table rendering.
type TableOptions struct {
	Marker  string // Currency marker prefixed to prices
	Palette Palette
}

type cell struct {
	text  string
	class Class
	color bool // colour by class
}

var tableHeader = []string{"#", "Name", "Symbol", "Price", "1h", "24h", "7d", "30d"}

// rightAligned marks numeric columns.
var rightAligned = []bool{true, false, false, true, true, true, true, true}

// Table renders one row per snapshot, in the order given.
func Table(snaps []model.MarketSnapshot, opts TableOptions) string {
	rows := make([][]cell, 0, len(snaps))
	for i, s := range snaps {
		row := []cell{
			{text: strconv.Itoa(i + 1)},
			{text: s.Name},
			{text: strings.ToUpper(s.Symbol)},
			{text: FormatOptionalPrice(s.CurrentPrice, opts.Marker)},
		}
		for _, w := range model.WatchWindows {
			text, class := FormatPercent(s.Change(w))
			row = append(row, cell{text: text, class: class, color: true})
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c.text); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	total := 0
	for i, h := range tableHeader {
		if i > 0 {
			b.WriteString("  ")
			total += 2
		}
		b.WriteString(opts.Palette.Bold(pad(h, widths[i], rightAligned[i])))
		total += widths[i]
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("─", total))
	b.WriteByte('\n')

	for _, row := range rows {
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			text := pad(c.text, widths[i], rightAligned[i])
			if c.color {
				text = opts.Palette.Class(c.class, text)
			}
			b.WriteString(text)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// pad fills s with spaces to width runes. Padding happens before styling so
// escape codes never count toward the width.
func pad(s string, width int, right bool) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
