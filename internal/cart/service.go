package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type productLookup interface {
	GetProductByID(id string) (catalog.Product, error)
}

type mutationRecorder interface {
	IncMutation(operation, outcome string)
	SetActiveSessions(n int)
}

// Service applies storefront policy around the per-session cart aggregate.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*View, error)
	UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*View, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
	Cart(ctx context.Context, sessionID string) (*Cart, error)
}

// ServiceParams wires the cart service.
type ServiceParams struct {
	Sessions *Sessions
	Catalog  productLookup
	Metrics  mutationRecorder
	// EnforceStockLimit caps a line's quantity at the product's InStock count.
	EnforceStockLimit bool
}

type service struct {
	sessions     *Sessions
	catalog      productLookup
	metrics      mutationRecorder
	enforceStock bool
}

// NewService builds a cart service backed by the provided session registry and catalog.
func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	recorder := params.Metrics
	if recorder == nil {
		recorder = metrics.NewStorefrontMetrics(nil)
	}
	return &service{
		sessions:     params.Sessions,
		catalog:      params.Catalog,
		metrics:      recorder,
		enforceStock: params.EnforceStockLimit,
	}, nil
}

// View is the read model of a session cart.
type View struct {
	Items     []ViewItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ViewItem is a line item with its unrounded line total.
type ViewItem struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewView snapshots c into a View.
func NewView(c *Cart) *View {
	items, count, subtotal := c.Snapshot()
	view := &View{
		Items:     make([]ViewItem, 0, len(items)),
		ItemCount: count,
		Subtotal:  subtotal,
	}
	for _, item := range items {
		view.Items = append(view.Items, ViewItem{
			Product:   item.Product,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return view
}

func (s *service) Cart(ctx context.Context, sessionID string) (*Cart, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	c := s.sessions.Get(sessionID)
	s.metrics.SetActiveSessions(s.sessions.Len())
	return c, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return NewView(c), nil
}

func (s *service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*View, error) {
	c, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.GetProductByID(productID)
	if err != nil {
		return s.reject(enums.CartMutationAdd, err)
	}
	if !product.Available() {
		return s.reject(enums.CartMutationAdd, pkgerrors.New(pkgerrors.CodeConflict, "product out of stock").
			WithDetails(map[string]any{"product_id": product.ID}))
	}
	if s.enforceStock && quantity > 0 {
		held, _ := c.Quantity(product.ID)
		// Compare against the remaining stock so held+quantity cannot overflow.
		if quantity > product.InStock-held {
			return s.reject(enums.CartMutationAdd, stockError(product, held, quantity))
		}
	}

	if err := c.Add(product, quantity); err != nil {
		return s.reject(enums.CartMutationAdd, err)
	}
	s.metrics.IncMutation(enums.CartMutationAdd.String(), metrics.OutcomeSuccess)
	return NewView(c), nil
}

func (s *service) UpdateItem(ctx context.Context, sessionID, productID string, quantity int) (*View, error) {
	c, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.enforceStock && quantity > 0 {
		if _, held := c.Quantity(productID); held {
			product, err := s.catalog.GetProductByID(productID)
			if err != nil {
				return s.reject(enums.CartMutationUpdate, err)
			}
			if err := checkStock(product, quantity); err != nil {
				return s.reject(enums.CartMutationUpdate, err)
			}
		}
	}

	if err := c.UpdateQuantity(productID, quantity); err != nil {
		return s.reject(enums.CartMutationUpdate, err)
	}
	s.metrics.IncMutation(enums.CartMutationUpdate.String(), metrics.OutcomeSuccess)
	return NewView(c), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (*View, error) {
	c, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	s.metrics.IncMutation(enums.CartMutationRemove.String(), metrics.OutcomeSuccess)
	return NewView(c), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	s.metrics.IncMutation(enums.CartMutationClear.String(), metrics.OutcomeSuccess)
	return NewView(c), nil
}

func (s *service) reject(op enums.CartMutation, err error) (*View, error) {
	s.metrics.IncMutation(op.String(), metrics.OutcomeRejected)
	return nil, err
}

func checkStock(product catalog.Product, wanted int) error {
	if wanted <= product.InStock {
		return nil
	}
	return stockError(product, 0, wanted)
}

func stockError(product catalog.Product, held, requested int) error {
	return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for product").WithDetails(map[string]any{
		"product_id": product.ID,
		"held":       held,
		"requested":  requested,
		"available":  product.InStock,
	})
}

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
