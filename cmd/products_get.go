package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/internal/api"
)

// NewProductsGetCommand creates the products get command
func NewProductsGetCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			a := newApp()
			if err := a.session.RequireAuth(); err != nil {
				return err
			}
			defer a.save()

			product, err := a.store.Product(cmdContext(), id)
			if errors.Is(err, api.ErrNotFound) {
				fmt.Printf("Product %d not found.\n", id)
				return nil
			}
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				data, err := json.MarshalIndent(product, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("ID:          %d\n", product.ID)
			fmt.Printf("Title:       %s\n", product.Title)
			fmt.Printf("Price:       %.2f\n", product.Price)
			fmt.Printf("Category:    %s (%d)\n", product.Category.Name, product.Category.ID)
			fmt.Printf("Description: %s\n", product.Description)
			fmt.Printf("Images:      %s\n", strings.Join(product.Images, "\n             "))
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output", "text", "Output format (json or text)")
	return cmd
}
