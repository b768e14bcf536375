package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pressline/internal/services"
	"pressline/internal/store"
	"pressline/internal/sync"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var platformFlags []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sync <source-release-id>",
		Short: "Enroll a source release in the distribution pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}

			return ctx.withStore(func(st *store.Store) error {
				engine := sync.NewEngine(st, ctx.slogger())
				pipeline, err := engine.Sync(cmd.Context(), owner, args[0], platformFlags)
				if err != nil {
					if errors.Is(err, services.ErrConflict) && pipeline != nil {
						// Duplicate sync is informational; show the existing record.
						if jsonOutput {
							return writeJSON(cmd, map[string]any{
								"id":       pipeline.ID,
								"status":   string(pipeline.Status),
								"existing": true,
							})
						}
						fmt.Fprintf(cmd.OutOrStdout(), "Already synced as %s (status %s)\n", pipeline.ID, pipeline.Status)
						return nil
					}
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"id":        pipeline.ID,
						"status":    string(pipeline.Status),
						"platforms": pipeline.Platforms,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Synced %s by %s into the pipeline as %s\n", pipeline.Title, pipeline.Artist, pipeline.ID)
				if len(pipeline.Platforms) > 0 {
					fmt.Fprintf(out, "Platforms: %s\n", strings.Join(pipeline.Platforms, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&platformFlags, "platform", nil, "Platform id to distribute to (repeatable; see `pressline catalog`)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}
