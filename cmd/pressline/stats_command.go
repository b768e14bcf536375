package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pressline/internal/analytics"
	"pressline/internal/store"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show distribution totals for the owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}

			return ctx.withStore(func(st *store.Store) error {
				aggregator := analytics.NewAggregator(st, ctx.slogger())
				summary, err := aggregator.Aggregate(cmd.Context(), owner)
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"total_releases": summary.TotalReleases,
						"published":      summary.PublishedCount,
						"pending":        summary.PendingCount,
						"total_streams":  summary.TotalStreams,
						"total_revenue":  summary.TotalRevenue,
					})
				}

				printer := message.NewPrinter(language.English)
				rows := [][]string{
					{"Total releases", printer.Sprintf("%d", summary.TotalReleases)},
					{"Published", printer.Sprintf("%d", summary.PublishedCount)},
					{"Pending", printer.Sprintf("%d", summary.PendingCount)},
					{"Total streams", printer.Sprintf("%d", summary.TotalStreams)},
					{"Total revenue", printer.Sprintf("%.2f", summary.TotalRevenue)},
				}

				out := cmd.OutOrStdout()
				if isTerminal(out) {
					table := renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
					fmt.Fprintln(out, table)
					return nil
				}
				for _, row := range rows {
					fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
