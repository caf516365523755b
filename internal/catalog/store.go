// Package catalog is the data-fetch layer: it reads products and
// categories through the shared cache and applies the optimistic-delete
// contract for product removal.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/storekit/storeadm/internal/api"
	"github.com/storekit/storeadm/internal/cache"
	"github.com/storekit/storeadm/internal/filter"
)

// Cache key namespaces. Product lists, product details and categories are
// keyed independently; invalidating one never affects the others.
const (
	productListPrefix = "products?"
	productKeyPrefix  = "product/"
	categoriesKey     = "categories"
)

// ErrDeletePending is returned when a delete is requested while another
// one is still in flight.
var ErrDeletePending = errors.New("a delete is already in progress")

// ErrDeleteRejected is returned when the server answers the delete with a
// negative result.
var ErrDeleteRejected = errors.New("server rejected the delete")

// Store reads catalog data through the cache and owns the optimistic
// product-list mutation for delete.
type Store struct {
	client        *api.Client
	cache         *cache.Store
	pageSize      int
	productsTTL   time.Duration
	categoriesTTL time.Duration
	log           *logrus.Logger

	mu       sync.Mutex
	deleting bool
}

// Config carries the tunables for a Store.
type Config struct {
	PageSize      int
	ProductsTTL   time.Duration
	CategoriesTTL time.Duration
	Logger        *logrus.Logger
}

// NewStore creates a catalog store over the given API client and cache.
func NewStore(client *api.Client, c *cache.Store, cfg Config) *Store {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 12
	}
	if cfg.ProductsTTL <= 0 {
		cfg.ProductsTTL = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Store{
		client:        client,
		cache:         c,
		pageSize:      cfg.PageSize,
		productsTTL:   cfg.ProductsTTL,
		categoriesTTL: cfg.CategoriesTTL,
		log:           cfg.Logger,
	}
}

// PageSize returns the configured page size.
func (s *Store) PageSize() int {
	return s.pageSize
}

// listKey returns the cache key for a product list under the given state.
func (s *Store) listKey(st filter.State) string {
	return productListPrefix + st.Query(s.pageSize).Key()
}

// Products fetches the product page described by the filter state, served
// from the cache within the staleness window, then sorted client-side.
func (s *Store) Products(ctx context.Context, st filter.State) ([]api.Product, error) {
	params := st.Query(s.pageSize)
	var products []api.Product
	err := s.cache.GetOrFetch(ctx, productListPrefix+params.Key(), s.productsTTL, func(ctx context.Context) (any, error) {
		return s.client.ListProducts(ctx, params)
	}, &products)
	if err != nil {
		return nil, err
	}
	filter.SortProducts(products, st.SortBy, st.SortOrder)
	return products, nil
}

// Product fetches a single product, cached under its own key.
func (s *Store) Product(ctx context.Context, id int) (*api.Product, error) {
	var product api.Product
	err := s.cache.GetOrFetch(ctx, fmt.Sprintf("%s%d", productKeyPrefix, id), s.productsTTL, func(ctx context.Context) (any, error) {
		return s.client.GetProduct(ctx, id)
	}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories fetches the category list. Categories are reference data:
// fetched once, never refetched absent explicit invalidation.
func (s *Store) Categories(ctx context.Context) ([]api.Category, error) {
	var categories []api.Category
	err := s.cache.GetOrFetch(ctx, categoriesKey, s.categoriesTTL, func(ctx context.Context) (any, error) {
		return s.client.ListCategories(ctx)
	}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Create creates a product and marks cached lists stale.
func (s *Store) Create(ctx context.Context, req api.CreateProductRequest) (*api.Product, error) {
	product, err := s.client.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePrefix(productListPrefix)
	return product, nil
}

// Update applies a partial update and marks the product and cached lists
// stale.
func (s *Store) Update(ctx context.Context, id int, req api.UpdateProductRequest) (*api.Product, error) {
	product, err := s.client.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(fmt.Sprintf("%s%d", productKeyPrefix, id))
	s.cache.InvalidatePrefix(productListPrefix)
	return product, nil
}

// Delete removes a product with an optimistic list mutation:
//
//  1. in-flight list fetches are cancelled so no racing response can
//     override the optimistic state
//  2. the current cached lists are snapshotted
//  3. cached lists are rewritten to exclude the target id
//  4. the delete request is sent
//  5. on failure the snapshot is restored verbatim
//  6. regardless of outcome the list keys are re-invalidated so the next
//     read reconciles with the server
//
// A second delete is refused while one is pending.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	if s.deleting {
		s.mu.Unlock()
		return ErrDeletePending
	}
	s.deleting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.deleting = false
		s.mu.Unlock()
	}()

	s.cache.CancelInFlight(productListPrefix)
	snapshot := s.cache.Snapshot(productListPrefix)
	s.removeFromCachedLists(snapshot, id)

	ok, err := s.client.DeleteProduct(ctx, id)
	if err == nil && !ok {
		err = ErrDeleteRejected
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Debug("delete failed, rolling back optimistic update")
		s.cache.Restore(snapshot)
	}

	// Settle: force the next list read to reconcile with the server.
	s.cache.InvalidatePrefix(productListPrefix)
	if err == nil {
		s.cache.Invalidate(fmt.Sprintf("%s%d", productKeyPrefix, id))
	}
	return err
}

// removeFromCachedLists rewrites each snapshotted list entry without the
// target id, preserving the entry's staleness window.
func (s *Store) removeFromCachedLists(snapshot map[string]cache.Entry, id int) {
	for key, ent := range snapshot {
		var list []api.Product
		if err := json.Unmarshal(ent.Data, &list); err != nil {
			continue
		}
		kept := make([]api.Product, 0, len(list))
		for _, p := range list {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if err := s.cache.Write(key, kept, ent.TTL); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("failed to write optimistic list update")
		}
	}
}

// CachedList peeks at the cached list for the given state regardless of
// freshness. Used to render the optimistic state.
func (s *Store) CachedList(st filter.State) ([]api.Product, bool) {
	var products []api.Product
	if !s.cache.Peek(s.listKey(st), &products) {
		return nil, false
	}
	return products, true
}
