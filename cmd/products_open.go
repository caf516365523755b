package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/internal/api"
)

// NewProductsOpenCommand creates the products open command
func NewProductsOpenCommand() *cobra.Command {
	var imageIndex int

	cmd := &cobra.Command{
		Use:   "open <product-id>",
		Short: "Open a product image in the browser",
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
			if len(product.Images) == 0 {
				fmt.Printf("Product %d has no images.\n", id)
				return nil
			}
			if imageIndex < 0 || imageIndex >= len(product.Images) {
				return fmt.Errorf("image index %d out of range, product has %d image(s)", imageIndex, len(product.Images))
			}

			url := product.Images[imageIndex]
			fmt.Printf("Opening %s\n", url)
			if err := browser.OpenURL(url); err != nil {
				return fmt.Errorf("failed to open browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&imageIndex, "image", 0, "Index of the image to open")
	return cmd
}
