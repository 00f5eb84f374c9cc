package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/ramp/internal/app"
)

var showMissing bool

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List enabled assets and their deposit addresses",
	Run:   runAssets,
}

func init() {
	assetsCmd.Flags().BoolVar(&showMissing, "missing", false, "list enabled assets without a usable address instead")
	rootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	ctx := context.Background()

	gateway, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize gateway", "error", err)
		os.Exit(1)
	}
	defer gateway.Close()

	if _, err := gateway.Registry.Initialize(ctx); err != nil {
		slog.Error("Failed to build registry", "error", err)
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.Debug)
	if showMissing {
		_, _ = fmt.Fprintln(w, "SYMBOL\tNAME\tNETWORK\tCATEGORY")
		for _, a := range gateway.Registry.Missing() {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Symbol, a.Name, a.Network, a.Category)
		}
		_ = w.Flush()
		return
	}

	_, _ = fmt.Fprintln(w, "SYMBOL\tNAME\tNETWORK\tSOURCE\tWALLET\tADDRESS\tMEMO")
	for _, l := range gateway.Registry.Enabled() {
		d := l.Deposit
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.Symbol, l.Name, d.Network, d.Source, d.WalletType, d.Address, d.Memo)
	}
	_ = w.Flush()
}
