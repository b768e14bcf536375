package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pressline/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	var categoryFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "catalog",
		Short:       "List known distribution platforms",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			platforms := catalog.ListAll()
			if categoryFlag != "" {
				platforms = catalog.ByCategory(catalog.Category(categoryFlag))
				if len(platforms) == 0 {
					return fmt.Errorf("unknown category %q (streaming, downloads, social)", categoryFlag)
				}
			}

			if jsonOutput {
				type jsonPlatform struct {
					ID       string `json:"id"`
					Name     string `json:"name"`
					Category string `json:"category"`
				}
				items := make([]jsonPlatform, 0, len(platforms))
				for _, p := range platforms {
					items = append(items, jsonPlatform{ID: p.ID, Name: p.Name, Category: string(p.Category)})
				}
				return writeJSON(cmd, map[string]any{"platforms": items})
			}

			rows := make([][]string, 0, len(platforms))
			for _, p := range platforms {
				rows = append(rows, []string{p.ID, p.Name, string(p.Category)})
			}
			table := renderTable([]string{"ID", "Name", "Category"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft})
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Filter by category (streaming, downloads, social)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
