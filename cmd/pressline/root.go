package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var ownerFlag string

	ctx := newCommandContext(&configFlag, &ownerFlag)

	rootCmd := &cobra.Command{
		Use:           "pressline",
		Short:         "Pressline release distribution CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", "", "Owner id acting on the pipeline (default $PRESSLINE_OWNER)")

	rootCmd.AddCommand(newAddReleaseCommand(ctx))
	rootCmd.AddCommand(newAttachCommand(ctx))
	rootCmd.AddCommand(newReleasesCommand(ctx))
	rootCmd.AddCommand(newSyncCommand(ctx))
	rootCmd.AddCommand(newAdvanceCommand(ctx))
	rootCmd.AddCommand(newRejectCommand(ctx))
	rootCmd.AddCommand(newPackageCommand(ctx))
	rootCmd.AddCommand(newMetricsCommand(ctx))
	rootCmd.AddCommand(newStatsCommand(ctx))
	rootCmd.AddCommand(newCatalogCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
