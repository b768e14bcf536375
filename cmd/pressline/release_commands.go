package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pressline/internal/release"
	"pressline/internal/store"
)

func newAddReleaseCommand(ctx *commandContext) *cobra.Command {
	var (
		typeFlag   string
		genresFlag []string
		dateFlag   string
		descFlag   string
		upcFlag    string
		audioFlag  string
		coverFlag  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "add-release <title> <artist>",
		Short: "Create a source release",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}

			releaseType := release.TypeSingle
			if trimmed := strings.TrimSpace(typeFlag); trimmed != "" {
				parsed, ok := release.ParseType(trimmed)
				if !ok {
					return fmt.Errorf("unknown release type %q (single, ep, album, compilation)", typeFlag)
				}
				releaseType = parsed
			}

			if trimmed := strings.TrimSpace(dateFlag); trimmed != "" {
				if _, err := time.Parse(release.ReleaseDateLayout, trimmed); err != nil {
					return fmt.Errorf("invalid release date %q (expected %s)", dateFlag, release.ReleaseDateLayout)
				}
				dateFlag = trimmed
			}

			src := &release.Source{
				OwnerID:     owner,
				Title:       strings.TrimSpace(args[0]),
				Artist:      strings.TrimSpace(args[1]),
				Type:        releaseType,
				Genres:      genresFlag,
				ReleaseDate: strings.TrimSpace(dateFlag),
				Description: strings.TrimSpace(descFlag),
				AudioRef:    strings.TrimSpace(audioFlag),
				CoverRef:    strings.TrimSpace(coverFlag),
				UPC:         strings.TrimSpace(upcFlag),
			}

			return ctx.withStore(func(st *store.Store) error {
				if err := st.InsertSource(cmd.Context(), src); err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"id":     src.ID,
						"title":  src.Title,
						"artist": src.Artist,
						"type":   string(src.Type),
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created source release %s (%s by %s)\n", src.ID, src.Title, src.Artist)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "single", "Release type (single, ep, album, compilation)")
	cmd.Flags().StringSliceVar(&genresFlag, "genre", nil, "Genre (repeatable; first is primary)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Planned release date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&descFlag, "description", "", "Release description")
	cmd.Flags().StringVar(&upcFlag, "upc", "", "Product code, if already assigned")
	cmd.Flags().StringVar(&audioFlag, "audio", "", "Audio master reference")
	cmd.Flags().StringVar(&coverFlag, "cover", "", "Cover art reference")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func newAttachCommand(ctx *commandContext) *cobra.Command {
	var audioFlag string
	var coverFlag string

	cmd := &cobra.Command{
		Use:   "attach <source-release-id>",
		Short: "Attach audio or cover references to a source release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}
			if strings.TrimSpace(audioFlag) == "" && strings.TrimSpace(coverFlag) == "" {
				return fmt.Errorf("nothing to attach (use --audio and/or --cover)")
			}

			return ctx.withStore(func(st *store.Store) error {
				updated, err := st.AttachAssets(cmd.Context(), owner, args[0], strings.TrimSpace(audioFlag), strings.TrimSpace(coverFlag))
				if err != nil {
					return err
				}
				if !updated {
					return fmt.Errorf("source release %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated assets on %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&audioFlag, "audio", "", "Audio master reference")
	cmd.Flags().StringVar(&coverFlag, "cover", "", "Cover art reference")
	return cmd
}

func newReleasesCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "releases",
		Short: "List pipeline releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}

			statuses := make([]release.Status, 0, len(statusFlags))
			for _, raw := range statusFlags {
				status, ok := release.ParseStatus(raw)
				if !ok {
					return fmt.Errorf("unknown status %q", raw)
				}
				statuses = append(statuses, status)
			}

			return ctx.withStore(func(st *store.Store) error {
				items, err := st.ListPipeline(cmd.Context(), owner, statuses...)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, pipelineJSONItems(items))
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No pipeline releases")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						item.ID,
						truncate(item.Title, 32),
						item.Artist,
						string(item.Status),
						orDash(item.ReleaseDate),
						formatOptionalTime(item.SubmittedAt),
					})
				}
				table := renderTable(
					[]string{"ID", "Title", "Artist", "Status", "Release Date", "Submitted"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&statusFlags, "status", nil, "Filter by status (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func pipelineJSONItems(items []*release.Pipeline) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry := map[string]any{
			"id":                item.ID,
			"source_release_id": item.SourceReleaseID,
			"title":             item.Title,
			"artist":            item.Artist,
			"status":            string(item.Status),
			"platforms":         item.Platforms,
			"streams":           item.Streams,
			"revenue":           item.Revenue,
		}
		if item.SubmittedAt != nil {
			entry["submitted_at"] = item.SubmittedAt.UTC()
		}
		out = append(out, entry)
	}
	return out
}
