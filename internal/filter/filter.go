// Package filter owns the canonical representation of the active product
// view: text search, category, price bounds, sort and page. It reconciles
// partial updates, round-trips the state through URL search parameters and
// derives the server-facing list parameters.
package filter

import (
	"net/url"
	"strconv"

	"github.com/spf13/cast"

	"github.com/storekit/storeadm/internal/api"
)

// SortKey selects the field products are ordered by.
type SortKey string

const (
	SortByTitle SortKey = "title"
	SortByPrice SortKey = "price"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// MaxTitleLength is the longest accepted free-text search.
const MaxTitleLength = 100

// priceCeiling is synthesized as the upper bound when only a lower price
// bound is supplied; the server does not accept one-sided range queries.
const priceCeiling = 999999

// State is the canonical filter state. A price bound of 0 means unset;
// the server ignores zero bounds, so 0 and absent are interchangeable at
// every boundary.
type State struct {
	Title      string
	CategoryID int
	PriceMin   int
	PriceMax   int
	SortBy     SortKey
	SortOrder  SortOrder
	Page       int
}

// Default returns the all-default state, equivalent to "no filters applied".
func Default() State {
	return State{
		SortBy:    SortByTitle,
		SortOrder: SortAsc,
		Page:      1,
	}
}

// IsDefault reports whether the state equals the all-default state.
func (s State) IsDefault() bool {
	return s == Default()
}

// Update is a partial change to a State. Nil fields are left untouched.
type Update struct {
	Title      *string
	CategoryID *int
	PriceMin   *int
	PriceMax   *int
	SortBy     *SortKey
	SortOrder  *SortOrder
	Page       *int
}

// touchesFilters reports whether the update changes what is being searched
// for, as opposed to how results are ordered or which page is shown.
func (u Update) touchesFilters() bool {
	return u.Title != nil || u.CategoryID != nil || u.PriceMin != nil || u.PriceMax != nil
}

// Apply merges a partial update into the state. Fields present in the
// update overwrite, everything else is preserved. Changing any filter
// field resets the page to 1 unless the update carries an explicit page;
// sort-only changes keep the current page.
func (s State) Apply(u Update) State {
	next := s
	if u.Title != nil {
		next.Title = *u.Title
	}
	if u.CategoryID != nil {
		next.CategoryID = *u.CategoryID
	}
	if u.PriceMin != nil {
		next.PriceMin = *u.PriceMin
	}
	if u.PriceMax != nil {
		next.PriceMax = *u.PriceMax
	}
	if u.SortBy != nil {
		next.SortBy = *u.SortBy
	}
	if u.SortOrder != nil {
		next.SortOrder = *u.SortOrder
	}
	if u.Page != nil {
		next.Page = *u.Page
	} else if u.touchesFilters() {
		next.Page = 1
	}
	return normalize(next)
}

// Encode serializes the state as URL search parameters, dropping every
// field equal to its default so the external representation stays minimal.
func (s State) Encode() url.Values {
	q := url.Values{}
	def := Default()
	if s.Title != def.Title {
		q.Set("title", s.Title)
	}
	if s.CategoryID != def.CategoryID {
		q.Set("categoryId", strconv.Itoa(s.CategoryID))
	}
	if s.PriceMin != def.PriceMin {
		q.Set("price_min", strconv.Itoa(s.PriceMin))
	}
	if s.PriceMax != def.PriceMax {
		q.Set("price_max", strconv.Itoa(s.PriceMax))
	}
	if s.SortBy != def.SortBy {
		q.Set("sortBy", string(s.SortBy))
	}
	if s.SortOrder != def.SortOrder {
		q.Set("sortOrder", string(s.SortOrder))
	}
	if s.Page != def.Page {
		q.Set("page", strconv.Itoa(s.Page))
	}
	return q
}

// Decode parses URL search parameters into a State. Parsing is tolerant:
// unparseable or out-of-range values fall back to their defaults rather
// than failing, so a malformed URL never surfaces an error.
func Decode(q url.Values) State {
	s := Default()
	if q == nil {
		return s
	}
	if title := q.Get("title"); title != "" && len(title) <= MaxTitleLength {
		s.Title = title
	}
	if id, err := cast.ToIntE(q.Get("categoryId")); err == nil && id > 0 {
		s.CategoryID = id
	}
	if min, err := cast.ToIntE(q.Get("price_min")); err == nil && min > 0 {
		s.PriceMin = min
	}
	if max, err := cast.ToIntE(q.Get("price_max")); err == nil && max > 0 {
		s.PriceMax = max
	}
	switch SortKey(q.Get("sortBy")) {
	case SortByTitle, SortByPrice:
		s.SortBy = SortKey(q.Get("sortBy"))
	}
	switch SortOrder(q.Get("sortOrder")) {
	case SortAsc, SortDesc:
		s.SortOrder = SortOrder(q.Get("sortOrder"))
	}
	if page, err := cast.ToIntE(q.Get("page")); err == nil && page >= 1 {
		s.Page = page
	}
	return s
}

// normalize clamps fields back into their valid ranges.
func normalize(s State) State {
	if len(s.Title) > MaxTitleLength {
		s.Title = s.Title[:MaxTitleLength]
	}
	if s.CategoryID < 0 {
		s.CategoryID = 0
	}
	if s.PriceMin < 0 {
		s.PriceMin = 0
	}
	if s.PriceMax < 0 {
		s.PriceMax = 0
	}
	switch s.SortBy {
	case SortByTitle, SortByPrice:
	default:
		s.SortBy = SortByTitle
	}
	switch s.SortOrder {
	case SortAsc, SortDesc:
	default:
		s.SortOrder = SortAsc
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// Query derives the server-facing list parameters from the state.
//
// Price bounds equal to 0 are treated as not provided. The server does
// not accept one-sided range queries cleanly, so once either bound is
// set the other is synthesized: a lone upper bound gains a floor of 1,
// a lone lower bound gains a large ceiling. Deterministic for identical
// states, so the result can serve as part of a cache key.
func (s State) Query(pageSize int) api.ListParams {
	p := api.ListParams{
		Title:      s.Title,
		CategoryID: s.CategoryID,
		PriceMin:   s.PriceMin,
		PriceMax:   s.PriceMax,
		Offset:     (s.Page - 1) * pageSize,
		Limit:      pageSize,
	}
	if p.PriceMax > 0 && p.PriceMin == 0 {
		p.PriceMin = 1
	}
	if p.PriceMin > 0 && p.PriceMax == 0 {
		p.PriceMax = priceCeiling
	}
	return p
}
