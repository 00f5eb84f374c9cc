package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/status"
)

var (
	orderWatch    bool
	orderInterval time.Duration
	orderByConnID bool
)

var orderCmd = &cobra.Command{
	Use:   "order <id>",
	Short: "Look up a Robinhood Connect order by referenceId (or connectId)",
	Args:  cobra.ExactArgs(1),
	Run:   runOrder,
}

func init() {
	orderCmd.Flags().BoolVar(&orderWatch, "watch", false, "poll until the order is terminal")
	orderCmd.Flags().DurationVar(&orderInterval, "interval", status.DefaultPollInterval, "poll interval with --watch")
	orderCmd.Flags().BoolVar(&orderByConnID, "connect-id", false, "treat the id as an onramp connectId")
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) {
	resolver := status.NewResolver(newRobinhoodClient(), nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	var (
		order domain.OrderStatus
		err   error
	)
	switch {
	case orderByConnID:
		order, err = resolver.OrderDetails(ctx, args[0])
	case orderWatch:
		order, err = resolver.Poll(ctx, args[0], orderInterval, func(o domain.OrderStatus) {
			slog.Info("Order state", "referenceId", o.ReferenceID, "status", o.Status)
		})
	default:
		order, err = resolver.FetchStatus(ctx, args[0])
	}
	if err != nil {
		slog.Error("Order lookup failed", "error", err, "action", status.Classify(err).String())
		os.Exit(1)
	}
	_ = enc.Encode(order)
}
