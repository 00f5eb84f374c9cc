package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/ramp/internal/app"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Build the deposit address registry and report problems",
	Run:   runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
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
		os.Exit(1)
	}
	report := gateway.Registry.ValidateAll()

	out := cmd.OutOrStdout()
	for _, e := range report.Errors {
		_, _ = fmt.Fprintf(out, "ERROR   %s\n", e)
	}
	for _, w := range report.Warnings {
		_, _ = fmt.Fprintf(out, "WARNING %s\n", w)
	}
	_, _ = fmt.Fprintf(out, "\n%d assets, %d with addresses, %d missing, %d configured: %d errors, %d warnings\n",
		report.Stats.Total, report.Stats.WithAddresses, report.Stats.MissingAddresses, report.Stats.Configured,
		len(report.Errors), len(report.Warnings))

	if !report.Valid {
		gateway.Close()
		os.Exit(1)
	}
}
