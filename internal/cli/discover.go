package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/ramp/internal/catalog"
	"github.com/vietddude/ramp/internal/infra/robinhood"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Compare Robinhood supported currencies with the local catalog",
	Run:   runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func newRobinhoodClient() *robinhood.Client {
	cfg := loadConfig()
	return robinhood.NewClient(robinhood.Config{
		BaseURL:       cfg.Robinhood.BaseURL,
		ApplicationID: cfg.Robinhood.ApplicationID,
		APIKey:        cfg.Robinhood.APIKey,
		Timeout:       cfg.Robinhood.Timeout,
		RateLimit:     cfg.Robinhood.RateLimit,
		Burst:         cfg.Robinhood.Burst,
	})
}

func runDiscover(cmd *cobra.Command, args []string) {
	client := newRobinhoodClient()

	currencies, err := client.SupportedCurrencies(context.Background())
	if err != nil {
		slog.Error("Failed to fetch supported currencies", "error", err)
		os.Exit(1)
	}

	offered := make(map[string]bool, len(currencies))
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "CODE\tNAME\tNETWORKS\tIN CATALOG\tENABLED")
	for _, c := range currencies {
		offered[c.Code] = true
		nets := make([]string, len(c.Networks))
		for i, n := range c.Networks {
			nets[i] = string(n)
		}
		asset, ok := catalog.FindAsset(c.Code)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n", c.Code, c.Name, strings.Join(nets, ","), ok, ok && asset.Enabled)
	}
	_ = w.Flush()

	var unoffered []string
	for _, a := range catalog.Assets() {
		if a.Enabled && !offered[a.Symbol] {
			unoffered = append(unoffered, a.Symbol)
		}
	}
	if len(unoffered) > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nEnabled in catalog but not offered: %s\n", strings.Join(unoffered, ", "))
	}
}
