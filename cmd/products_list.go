package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/config"
	"github.com/storekit/storeadm/internal/api"
	"github.com/storekit/storeadm/internal/filter"
)

// ProductsListOptions holds command options
type ProductsListOptions struct {
	Title        string
	CategoryID   int
	PriceMin     int
	PriceMax     int
	SortBy       string
	SortOrder    string
	Page         int
	OutputFormat string
	UseSaved     bool
	SaveFilters  bool
}

// NewProductsListCommand creates the products list command
func NewProductsListCommand() *cobra.Command {
	opts := &ProductsListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with filters and pagination",
		Long:  "List products, filtered and paginated server-side and sorted client-side.",
		Example: `  storeadm products list
  storeadm products list --title shirt --price-min 10
  storeadm products list --category 2 --sort price --order desc --page 3
  storeadm products list --use-saved --save-filters`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductsList(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Title, "title", "", "Filter by title (free text)")
	flags.IntVar(&opts.CategoryID, "category", 0, "Filter by category id (0 = all)")
	flags.IntVar(&opts.PriceMin, "price-min", 0, "Minimum price (0 = unset)")
	flags.IntVar(&opts.PriceMax, "price-max", 0, "Maximum price (0 = unset)")
	flags.StringVar(&opts.SortBy, "sort", "", "Sort key (title or price)")
	flags.StringVar(&opts.SortOrder, "order", "", "Sort order (asc or desc)")
	flags.IntVar(&opts.Page, "page", 0, "Page number (1-based)")
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (json or text)")
	flags.BoolVar(&opts.UseSaved, "use-saved", false, "Start from the saved filter snapshot")
	flags.BoolVar(&opts.SaveFilters, "save-filters", false, "Save the resulting filters for later runs")

	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"title", "price"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// stateFromFlags merges changed flags into the base state as a partial
// update, so page-reset behaves the same as any other filter change.
func stateFromFlags(cmd *cobra.Command, base filter.State, opts *ProductsListOptions) filter.State {
	u := filter.Update{}
	if cmd.Flags().Changed("title") {
		u.Title = &opts.Title
	}
	if cmd.Flags().Changed("category") {
		u.CategoryID = &opts.CategoryID
	}
	if cmd.Flags().Changed("price-min") {
		u.PriceMin = &opts.PriceMin
	}
	if cmd.Flags().Changed("price-max") {
		u.PriceMax = &opts.PriceMax
	}
	if cmd.Flags().Changed("sort") {
		key := filter.SortKey(opts.SortBy)
		u.SortBy = &key
	}
	if cmd.Flags().Changed("order") {
		order := filter.SortOrder(opts.SortOrder)
		u.SortOrder = &order
	}
	if cmd.Flags().Changed("page") {
		u.Page = &opts.Page
	}
	return base.Apply(u)
}

func runProductsList(cmd *cobra.Command, opts *ProductsListOptions) error {
	a := newApp()
	if err := a.session.RequireAuth(); err != nil {
		return err
	}
	defer a.save()

	base := filter.Default()
	if opts.UseSaved {
		base = filter.Load(config.GetStateDir())
	}
	state := stateFromFlags(cmd, base, opts)

	products, err := a.store.Products(cmdContext(), state)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if opts.SaveFilters {
		if err := filter.Save(config.GetStateDir(), state); err != nil {
			return fmt.Errorf("failed to save filters: %w", err)
		}
	}

	if opts.OutputFormat == "json" {
		data, err := json.MarshalIndent(products, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printProductTable(products, state, a.store.PageSize())
	return nil
}

func printProductTable(products []api.Product, state filter.State, pageSize int) {
	if len(products) == 0 {
		fmt.Println("No products found. Try loosening the filters.")
		return
	}

	header := color.New(color.Bold)
	header.Printf("%-6s %-40s %10s  %-20s\n", "ID", "TITLE", "PRICE", "CATEGORY")
	for _, p := range products {
		title := p.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Printf("%-6d %-40s %10.2f  %-20s\n", p.ID, title, p.Price, p.Category.Name)
	}

	if len(products) >= pageSize {
		fmt.Printf("\nPage %d. More results may be available; use --page %d.\n", state.Page, state.Page+1)
	} else {
		fmt.Printf("\nPage %d (end of results).\n", state.Page)
	}
}
