package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/ramp/internal/infra/storage"
	"github.com/vietddude/ramp/internal/infra/storage/postgres"
)

var buildsLimit int

var buildsCmd = &cobra.Command{
	Use:   "builds [build-id]",
	Short: "Show the registry build history, or one build's address table",
	Args:  cobra.MaximumNArgs(1),
	Run:   runBuilds,
}

func init() {
	buildsCmd.Flags().IntVar(&buildsLimit, "limit", 20, "number of builds to list")
	rootCmd.AddCommand(buildsCmd)
}

func runBuilds(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if cfg.Database.URL == "" {
		slog.Error("Build history requires database.url")
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()
	repo := postgres.NewBuildRepo(db)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.Debug)
	defer func() {
		_ = w.Flush()
	}()

	if len(args) == 1 {
		build, err := repo.GetBuild(ctx, args[0])
		if errors.Is(err, storage.ErrBuildNotFound) {
			slog.Error("Build not found", "id", args[0])
			return
		}
		if err != nil {
			slog.Error("Failed to load build", "error", err)
			return
		}
		_, _ = fmt.Fprintln(w, "SYMBOL\tNETWORK\tSOURCE\tWALLET\tADDRESS")
		for _, a := range build.Addresses {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Symbol, a.Network, a.Source, a.WalletType, a.Address)
		}
		return
	}

	builds, err := repo.ListBuilds(ctx, buildsLimit)
	if err != nil {
		slog.Error("Failed to list builds", "error", err)
		return
	}
	_, _ = fmt.Fprintln(w, "ID\tTRIGGER\tBUILT\tENTRIES\tVALID\tERRORS\tWARNINGS\tDYNAMIC ERROR")
	for _, b := range builds {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\t%d\t%d\t%s\n",
			b.ID, b.Trigger, b.BuiltAt.Format(time.RFC3339), b.Entries, b.Valid,
			len(b.Errors), len(b.Warnings), b.DynamicError)
	}
}
