package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	debug       bool
	coin        string
	exitAfter   bool
	watchSyms   []string
	watchlistNm string
)

var rootCmd = &cobra.Command{
	Use:   "coinmage",
	Short: "coinmage - cryptocurrency prices in your terminal",
	Long: `coinmage looks up cryptocurrency prices from CoinGecko and watches
a set of symbols in a table refreshed every minute.

Run without arguments for an interactive prompt.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.coinmage/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.Flags().StringVarP(&coin, "coin", "c", "", "look up a coin by name, symbol or id")
	rootCmd.Flags().BoolVarP(&exitAfter, "exit", "x", false, "exit after --coin instead of starting the prompt")
	rootCmd.Flags().StringSliceVarP(&watchSyms, "watch", "w", nil, "watch symbols (comma separated) before the prompt")
	rootCmd.Flags().StringVarP(&watchlistNm, "watchlist", "l", "", "watch a saved watchlist before the prompt")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("coinmage: " + err.Error() + "\n")
		os.Exit(1)
	}
}
