package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/devin-hart/coinmage/internal/render"
	"github.com/devin-hart/coinmage/internal/version"
)

const helpText = `Commands:
  <coin>                     Show price details for a coin name, symbol or id
  /watch <symbol> [...]      Live table, refreshed every interval
  /save <name> [symbol...]   Save the last watched symbols (or the given ones)
  /load <name>               Load a saved watchlist and watch it
  /list                      List saved watchlists
  /top                       Top 10 coins by market cap
  /trending                  Trending coins
  /help                      Show this help
  /exit                      Quit
`

// Banner writes the startup banner.
func Banner(w io.Writer, vsCurrency string, p render.Palette) {
	fmt.Fprintln(w, render.Rule)
	fmt.Fprintf(w, "%s %s  prices in %s\n",
		p.Bold("coinmage"), version.Short(), strings.ToUpper(vsCurrency))
	fmt.Fprintln(w, "Type a coin to look it up, or /help for commands.")
	fmt.Fprintln(w, render.Rule)
}

func stopHint(stopKeys string) string {
	if stopKeys == "" {
		return "press Esc to stop"
	}
	r, _ := utf8.DecodeRuneInString(stopKeys)
	return fmt.Sprintf("press %c or Esc to stop", r)
}
