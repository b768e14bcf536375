package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pressline/internal/analytics"
	"pressline/internal/store"
)

func newMetricsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <pipeline-release-id> <streams> <revenue>",
		Short: "Record reported streams and revenue for a published release",
		Long: `Metrics records the latest performance figures reported by the
distributor. Each report replaces the previous one; re-running with the
same figures is a no-op.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}
			streams, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid stream count %q", args[1])
			}
			revenue, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid revenue %q", args[2])
			}

			return ctx.withStore(func(st *store.Store) error {
				aggregator := analytics.NewAggregator(st, ctx.slogger())
				if err := aggregator.UpdateMetrics(cmd.Context(), owner, args[0], streams, revenue); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d streams and %.2f revenue for %s\n", streams, revenue, args[0])
				return nil
			})
		},
	}
}
