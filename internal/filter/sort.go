package filter

import (
	"sort"
	"strings"

	"github.com/storekit/storeadm/internal/api"
)

// SortProducts orders a fetched page in place by the state's sort key and
// direction. Ordering is applied client-side; the server is only asked to
// filter and paginate.
func SortProducts(products []api.Product, key SortKey, order SortOrder) {
	sort.SliceStable(products, func(i, j int) bool {
		var cmp int
		switch key {
		case SortByPrice:
			switch {
			case products[i].Price < products[j].Price:
				cmp = -1
			case products[i].Price > products[j].Price:
				cmp = 1
			}
		default:
			cmp = strings.Compare(strings.ToLower(products[i].Title), strings.ToLower(products[j].Title))
		}
		if order == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}
