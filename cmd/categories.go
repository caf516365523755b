package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewCategoriesCommand creates and returns the categories command
func NewCategoriesCommand() *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse catalog categories",
	}

	categoriesCmd.AddCommand(newCategoriesListCommand())
	return categoriesCmd
}

func newCategoriesListCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  "List all categories. Categories are reference data and cached until explicitly refreshed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if err := a.session.RequireAuth(); err != nil {
				return err
			}
			defer a.save()

			categories, err := a.store.Categories(cmdContext())
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if outputFormat == "json" {
				data, err := json.MarshalIndent(categories, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if len(categories) == 0 {
				fmt.Println("No categories found")
				return nil
			}
			header := color.New(color.Bold)
			header.Printf("%-6s %-30s\n", "ID", "NAME")
			for _, c := range categories {
				fmt.Printf("%-6d %-30s\n", c.ID, c.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output", "text", "Output format (json or text)")
	return cmd
}
