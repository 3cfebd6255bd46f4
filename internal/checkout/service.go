package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/checkout/helpers"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type cartSource interface {
	Cart(ctx context.Context, sessionID string) (*cart.Cart, error)
}

type checkoutRecorder interface {
	ObserveCheckout(outcome string, total float64)
}

// Service quotes and places orders for a session cart.
type Service interface {
	Quote(ctx context.Context, sessionID string) (*Quote, error)
	PlaceOrder(ctx context.Context, sessionID string, form Form) (*Confirmation, error)
}

// ServiceParams wires the checkout service.
type ServiceParams struct {
	Carts   cartSource
	Metrics checkoutRecorder
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	carts   cartSource
	metrics checkoutRecorder
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds a checkout service over the session carts.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart source required")
	}
	recorder := params.Metrics
	if recorder == nil {
		recorder = metrics.NewStorefrontMetrics(nil)
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		carts:   params.Carts,
		metrics: recorder,
		logg:    params.Logger,
		now:     now,
	}, nil
}

func (s *service) Quote(ctx context.Context, sessionID string) (*Quote, error) {
	c, err := s.carts.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view := cart.NewView(c)
	return &Quote{Cart: view, Totals: ComputeTotals(view.Subtotal)}, nil
}

func (s *service) PlaceOrder(ctx context.Context, sessionID string, form Form) (*Confirmation, error) {
	form = form.Normalize()
	placedAt := s.now().UTC()
	if err := form.Validate(placedAt); err != nil {
		s.metrics.ObserveCheckout(metrics.OutcomeRejected, 0)
		return nil, err
	}

	c, err := s.carts.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Drain takes the lines and empties the cart under one lock so a
	// concurrent add lands in the next order rather than vanishing.
	lines := c.Drain()
	if len(lines) == 0 {
		s.metrics.ObserveCheckout(metrics.OutcomeRejected, 0)
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	totals := ComputeTotals(cart.SubtotalOf(lines))
	items, count := viewItems(lines)
	confirmation := &Confirmation{
		OrderNumber: uuid.NewString(),
		PlacedAt:    placedAt,
		Email:       form.Email,
		ShipTo:      addressFromForm(form),
		Items:       items,
		ItemCount:   count,
		Totals:      totals,
		CardLast4:   helpers.LastFour(form.CardNumber),
	}

	s.metrics.ObserveCheckout(metrics.OutcomeSuccess, totals.Total.InexactFloat64())
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_number": confirmation.OrderNumber,
			"item_count":   count,
			"total":        Display(totals.Total),
		})
		s.logg.Info(ctx, "order placed")
	}
	return confirmation, nil
}
