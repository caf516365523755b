package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/internal/api"
	"github.com/storekit/storeadm/internal/validator"
)

// NewProductsUpdateCommand creates the products update command
func NewProductsUpdateCommand() *cobra.Command {
	var (
		title       string
		price       float64
		description string
		categoryID  int
		images      []string
	)

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update fields of a product",
		Long:  "Update a product. Only the flags you pass are sent; everything else is left untouched.",
		Args:  cobra.ExactArgs(1),
		Example: `  storeadm products update 626 --price 19.99
  storeadm products update 626 --title "New name" --category 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			req := api.UpdateProductRequest{}
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("price") {
				req.Price = &price
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("category") {
				req.CategoryID = &categoryID
			}
			if cmd.Flags().Changed("image") {
				req.Images = images
			}
			if req.Title == nil && req.Price == nil && req.Description == nil && req.CategoryID == nil && req.Images == nil {
				return fmt.Errorf("nothing to update, pass at least one field flag")
			}
			if err := validator.ValidateUpdateProduct(req); err != nil {
				return err
			}

			a := newApp()
			if err := a.session.RequireAuth(); err != nil {
				return err
			}
			defer a.save()

			product, err := a.store.Update(cmdContext(), id, req)
			if err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			fmt.Printf("Updated product %d: %s\n", product.ID, product.Title)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "New title")
	flags.Float64Var(&price, "price", 0, "New price")
	flags.StringVar(&description, "description", "", "New description")
	flags.IntVar(&categoryID, "category", 0, "New category id")
	flags.StringArrayVar(&images, "image", nil, "Replacement image URL (repeatable)")

	return cmd
}
