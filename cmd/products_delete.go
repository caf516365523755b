package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/internal/api"
	"github.com/storekit/storeadm/internal/catalog"
)

// NewProductsDeleteCommand creates the products delete command
func NewProductsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product by its ID",
		Long:  "Delete a product. Cached lists are updated optimistically and rolled back if the server rejects the delete.",
		Example: `  storeadm products delete 626
  storeadm products delete 626 --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			return runProductsDelete(id, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete without confirmation")
	return cmd
}

func runProductsDelete(id int, force bool) error {
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

	if !force {
		fmt.Printf("Delete %q (id %d)? This action cannot be undone. [y/N] ", product.Title, id)
		reader := bufio.NewReader(os.Stdin)
		reply, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		reply = strings.TrimSpace(strings.ToLower(reply))
		if reply != "y" && reply != "yes" {
			fmt.Println("Operation cancelled")
			return nil
		}
	}

	if err := a.store.Delete(cmdContext(), id); err != nil {
		if errors.Is(err, catalog.ErrDeletePending) {
			return err
		}
		color.Red("Failed to delete product, the local list was restored. Please try again.")
		return err
	}

	fmt.Printf("Product %d deleted successfully\n", id)
	return nil
}
