package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type stubCarts struct {
	carts map[string]*cart.Cart
	err   error
}

func (s *stubCarts) Cart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.carts[sessionID]
	if !ok {
		c = cart.New()
		s.carts[sessionID] = c
	}
	return c, nil
}

type observedCheckout struct {
	outcome string
	total   float64
}

type stubCheckoutRecorder struct {
	observed []observedCheckout
}

func (s *stubCheckoutRecorder) ObserveCheckout(outcome string, total float64) {
	s.observed = append(s.observed, observedCheckout{outcome: outcome, total: total})
}

var fixedNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func product(id, price string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		Category: "Test",
		Price:    decimal.RequireFromString(price),
		Images:   []string{"/img/" + id + ".png"},
		InStock:  10,
	}
}

func validForm() Form {
	return Form{
		Email:      "Shopper@Example.com",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Address:    "12 Analytical Way",
		City:       "London",
		State:      "ldn",
		ZipCode:    "N1 9GU",
		Country:    "gb",
		CardName:   "Ada Lovelace",
		CardNumber: "4242 4242 4242 4242",
		CardExpiry: "08/28",
		CardCVC:    "123",
	}
}

func newTestService(t *testing.T) (Service, *stubCarts, *stubCheckoutRecorder) {
	t.Helper()
	carts := &stubCarts{carts: map[string]*cart.Cart{}}
	recorder := &stubCheckoutRecorder{}
	svc, err := NewService(ServiceParams{
		Carts:   carts,
		Metrics: recorder,
		Now:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc, carts, recorder
}

func TestNewServiceRequiresCarts(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}

func TestQuoteAppliesShippingPolicy(t *testing.T) {
	svc, carts, _ := newTestService(t)
	c := cart.New()
	require.NoError(t, c.Add(product("a", "24.99"), 2))
	carts.carts["s1"] = c

	quote, err := svc.Quote(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, quote.Cart.ItemCount)
	assert.Equal(t, "49.98", Display(quote.Totals.Subtotal))
	assert.Equal(t, "9.99", Display(quote.Totals.Shipping))
	assert.Equal(t, "59.97", Display(quote.Totals.Total))
	assert.Equal(t, "0.02", Display(quote.Totals.AmountToFreeShipping))
}

func TestQuoteEmptyCart(t *testing.T) {
	svc, _, _ := newTestService(t)

	quote, err := svc.Quote(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, 0, quote.Cart.ItemCount)
	assert.Equal(t, "9.99", Display(quote.Totals.Shipping))
}

func TestPlaceOrderClearsCartAndConfirms(t *testing.T) {
	svc, carts, recorder := newTestService(t)
	c := cart.New()
	require.NoError(t, c.Add(product("a", "199.99"), 2))
	require.NoError(t, c.Add(product("b", "4.99"), 1))
	carts.carts["s1"] = c

	confirmation, err := svc.PlaceOrder(context.Background(), "s1", validForm())
	require.NoError(t, err)

	assert.NotEmpty(t, confirmation.OrderNumber)
	assert.Equal(t, fixedNow, confirmation.PlacedAt)
	assert.Equal(t, "shopper@example.com", confirmation.Email)
	assert.Equal(t, "Ada Lovelace", confirmation.ShipTo.Name)
	assert.Equal(t, "LDN", confirmation.ShipTo.State)
	assert.Equal(t, "GB", confirmation.ShipTo.Country)
	assert.Equal(t, "4242", confirmation.CardLast4)
	assert.Equal(t, 3, confirmation.ItemCount)
	require.Len(t, confirmation.Items, 2)
	assert.Equal(t, "399.98", Display(confirmation.Items[0].LineTotal))
	assert.Equal(t, "404.97", Display(confirmation.Totals.Subtotal))
	assert.True(t, confirmation.Totals.FreeShipping)
	assert.Equal(t, "404.97", Display(confirmation.Totals.Total))

	assert.True(t, c.IsEmpty())
	require.Len(t, recorder.observed, 1)
	assert.Equal(t, metrics.OutcomeSuccess, recorder.observed[0].outcome)
	assert.InDelta(t, 404.97, recorder.observed[0].total, 0.001)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, _, recorder := newTestService(t)

	_, err := svc.PlaceOrder(context.Background(), "s1", validForm())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeStateConflict))
	require.Len(t, recorder.observed, 1)
	assert.Equal(t, metrics.OutcomeRejected, recorder.observed[0].outcome)
}

func TestPlaceOrderInvalidFormKeepsCart(t *testing.T) {
	svc, carts, _ := newTestService(t)
	c := cart.New()
	require.NoError(t, c.Add(product("a", "10.00"), 1))
	carts.carts["s1"] = c

	form := validForm()
	form.Email = "not-an-email"
	form.CardNumber = "4242 4242 4242 4241"

	_, err := svc.PlaceOrder(context.Background(), "s1", form)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "card_number")
	assert.Equal(t, 1, c.ItemCount())
}

func TestPlaceOrderPropagatesCartError(t *testing.T) {
	carts := &stubCarts{err: errors.New("boom")}
	svc, err := NewService(ServiceParams{Carts: carts, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), "s1", validForm())
	require.EqualError(t, err, "boom")
}
