package cmd

import (
	"github.com/spf13/cobra"
)

// NewProductsCommand creates and returns the products command
func NewProductsCommand() *cobra.Command {
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "Manage catalog products",
		Long:  `The products command is used to manage catalog products, including listing with filters, creating, updating and deleting.`,
		Example: `  storeadm products list --title shirt --price-max 50     # Filtered list
  storeadm products get 626                                # Show one product
  storeadm products create --title "Mug" --price 9 --category 2 --image https://example.com/mug.png
  storeadm products delete 626                             # Delete after confirmation`,
	}

	productsCmd.AddCommand(
		NewProductsListCommand(),
		NewProductsGetCommand(),
		NewProductsCreateCommand(),
		NewProductsUpdateCommand(),
		NewProductsDeleteCommand(),
		NewProductsOpenCommand(),
	)

	return productsCmd
}
