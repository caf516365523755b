package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/internal/api"
	"github.com/storekit/storeadm/internal/validator"
)

// ProductsCreateOptions holds command options
type ProductsCreateOptions struct {
	Title       string
	Price       float64
	Description string
	CategoryID  int
	Images      []string
}

// NewProductsCreateCommand creates the products create command
func NewProductsCreateCommand() *cobra.Command {
	opts := &ProductsCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Example: `  storeadm products create --title "Mug" --price 9.5 --category 2 \
    --description "A mug" --image https://example.com/mug.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.CreateProductRequest{
				Title:       opts.Title,
				Price:       opts.Price,
				Description: opts.Description,
				CategoryID:  opts.CategoryID,
				Images:      opts.Images,
			}
			// Invalid input never reaches the network.
			if err := validator.ValidateCreateProduct(req); err != nil {
				return err
			}

			a := newApp()
			if err := a.session.RequireAuth(); err != nil {
				return err
			}
			defer a.save()

			product, err := a.store.Create(cmdContext(), req)
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}
			fmt.Printf("Created product %d: %s\n", product.ID, product.Title)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Title, "title", "", "Product title (required)")
	flags.Float64Var(&opts.Price, "price", 0, "Product price")
	flags.StringVar(&opts.Description, "description", "", "Product description")
	flags.IntVar(&opts.CategoryID, "category", 0, "Category id (required)")
	flags.StringArrayVar(&opts.Images, "image", nil, "Image URL (repeatable, at least one required)")

	return cmd
}
