package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pressline/internal/docpack"
	"pressline/internal/export"
	"pressline/internal/lifecycle"
	"pressline/internal/release"
	"pressline/internal/store"
)

func newAdvanceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <pipeline-release-id> <status>",
		Short: "Advance a pipeline release to the next lifecycle status",
		Long: `Advance performs an operator-confirmed lifecycle transition:
submitted to processing once the upload is confirmed, processing to
published once the release is live. Draft releases advance to submitted
through package generation, not through this command.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}
			target, ok := release.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}

			return ctx.withStore(func(st *store.Store) error {
				machine := newMachine(ctx, st)
				updated, err := machine.Advance(cmd.Context(), owner, args[0], target)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Release %s is now %s\n", updated.ID, updated.Status)
				return nil
			})
		},
	}
}

func newRejectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <pipeline-release-id>",
		Short: "Reject a submitted or processing release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				machine := newMachine(ctx, st)
				updated, err := machine.Reject(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Release %s rejected\n", updated.ID)
				return nil
			})
		},
	}
}

func newPackageCommand(ctx *commandContext) *cobra.Command {
	var exportFlag bool
	var metadataOnly bool

	cmd := &cobra.Command{
		Use:   "package <pipeline-release-id>",
		Short: "Generate the distribution hand-off package",
		Long: `Package renders the hand-off documents for a release: the metadata
CSV, the upload instructions, and the machine-readable checklist. A draft
release is submitted as a side effect; a submitted release re-renders the
same documents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ctx.ownerID()
			if err != nil {
				return err
			}

			return ctx.withStore(func(st *store.Store) error {
				machine := newMachine(ctx, st)
				pkg, updated, err := machine.GeneratePackage(cmd.Context(), owner, args[0], time.Now())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if exportFlag {
					cfg, err := ctx.ensureConfig()
					if err != nil {
						return err
					}
					exporter := export.NewExporter(cfg.Paths.ExportDir, ctx.slogger())
					paths, err := exporter.Export(cmd.Context(), updated.ID, *pkg)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Exported package for %s:\n", updated.ID)
					fmt.Fprintf(out, "  %s\n", paths.Metadata)
					fmt.Fprintf(out, "  %s\n", paths.Instructions)
					fmt.Fprintf(out, "  %s\n", paths.Checklist)
				} else if metadataOnly {
					fmt.Fprint(out, docpack.MetadataCSV(pkg.Metadata))
				} else {
					fmt.Fprint(out, pkg.Instructions)
				}

				progress := docpack.Progress(pkg.Checklist.WorkflowStatus)
				fmt.Fprintf(out, "Status: %s (workflow %.0f%% complete)\n", updated.Status, progress*100)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&exportFlag, "export", false, "Write the documents to the export directory")
	cmd.Flags().BoolVar(&metadataOnly, "metadata", false, "Print only the metadata CSV")
	return cmd
}

func newMachine(ctx *commandContext, st *store.Store) *lifecycle.Machine {
	cfg, _ := ctx.ensureConfig()
	profile := cfg.Distribution
	return lifecycle.NewMachine(st, profile, ctx.slogger())
}
