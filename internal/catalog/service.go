package catalog

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// DefaultFeaturedLimit matches the number of featured cards on the homepage.
const DefaultFeaturedLimit = 4

// Service exposes read-only lookups over the static catalog.
type Service interface {
	GetProductByID(id string) (Product, error)
	GetProductsByCategory(category string) []Product
	GetAllCategories() []string
	GetFeaturedProducts(limit int) []Product
	ListProducts(params ListParams) (*ListResult, error)
}

// ListParams controls category filtering, ordering and paging of a listing.
type ListParams struct {
	Category string
	Sort     enums.ProductSort
	Limit    int
	Cursor   string
}

// ListResult is one page of a catalog listing.
type ListResult struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

type service struct {
	products   []Product
	byID       map[string]int
	categories []string
}

// NewService validates the provided records and builds an indexed catalog.
// Every invalid record is reported, not only the first.
func NewService(products []Product) (Service, error) {
	svc := &service{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	seen := map[string]struct{}{}
	var errs error
	for _, p := range products {
		if err := p.validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := svc.byID[p.ID]; dup {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate product id %q", p.ID)))
			continue
		}
		svc.byID[p.ID] = len(svc.products)
		svc.products = append(svc.products, p.Clone())
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			svc.categories = append(svc.categories, p.Category)
		}
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, fmt.Sprintf("%d invalid catalog records", len(multierr.Errors(errs))))
	}
	return svc, nil
}

func (s *service) GetProductByID(id string) (Product, error) {
	idx, ok := s.byID[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").WithDetails(map[string]any{"product_id": id})
	}
	return s.products[idx].Clone(), nil
}

// GetProductsByCategory returns every product for the "All" sentinel and exact matches otherwise.
func (s *service) GetProductsByCategory(category string) []Product {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category == AllCategories || p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out
}

// GetAllCategories returns "All" followed by the distinct categories in first-seen order.
func (s *service) GetAllCategories() []string {
	out := make([]string, 0, len(s.categories)+1)
	out = append(out, AllCategories)
	return append(out, s.categories...)
}

func (s *service) GetFeaturedProducts(limit int) []Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	out := make([]Product, 0, limit)
	for _, p := range s.products {
		if len(out) == limit {
			break
		}
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (s *service) ListProducts(params ListParams) (*ListResult, error) {
	category := params.Category
	if category == "" {
		category = AllCategories
	}
	order := params.Sort
	if order == "" {
		order = enums.ProductSortDefault
	}
	if !order.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort").WithDetails(map[string]any{"sort": string(order)})
	}

	filtered := s.GetProductsByCategory(category)
	sortProducts(filtered, order)

	page, err := pagination.Slice(len(filtered), pagination.Params{Limit: params.Limit, Cursor: params.Cursor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	return &ListResult{
		Products:   filtered[page.Start:page.End],
		Total:      len(filtered),
		NextCursor: page.NextCursor,
	}, nil
}

// sortProducts orders in place; ties keep catalog order.
func sortProducts(products []Product, order enums.ProductSort) {
	switch order {
	case enums.ProductSortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case enums.ProductSortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case enums.ProductSortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
