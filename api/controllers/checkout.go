package controllers

import (
	"net/http"
	"time"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// CheckoutQuote returns the order summary for the session cart.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutQuoteResponse{
			ItemCount: quote.Cart.ItemCount,
			Totals:    newTotalsResponse(quote.Totals),
		})
	}
}

// Checkout places an order for the session cart and clears it.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutsvc.Form
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.PlaceOrder(r.Context(), sessionID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCheckoutResponse(confirmation))
	}
}

type checkoutQuoteResponse struct {
	ItemCount int            `json:"item_count"`
	Totals    totalsResponse `json:"totals"`
}

type totalsResponse struct {
	Subtotal             string `json:"subtotal"`
	Shipping             string `json:"shipping"`
	Total                string `json:"total"`
	FreeShipping         bool   `json:"free_shipping"`
	AmountToFreeShipping string `json:"amount_to_free_shipping"`
}

type checkoutResponse struct {
	OrderNumber string                  `json:"order_number"`
	PlacedAt    string                  `json:"placed_at"`
	Email       string                  `json:"email"`
	ShipTo      checkoutsvc.Address     `json:"ship_to"`
	Items       []orderLineItemResponse `json:"items"`
	ItemCount   int                     `json:"item_count"`
	Totals      totalsResponse          `json:"totals"`
	CardLast4   string                  `json:"card_last4"`
}

type orderLineItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

func newTotalsResponse(t checkoutsvc.Totals) totalsResponse {
	return totalsResponse{
		Subtotal:             checkoutsvc.Display(t.Subtotal),
		Shipping:             checkoutsvc.Display(t.Shipping),
		Total:                checkoutsvc.Display(t.Total),
		FreeShipping:         t.FreeShipping,
		AmountToFreeShipping: checkoutsvc.Display(t.AmountToFreeShipping),
	}
}

func newCheckoutResponse(c *checkoutsvc.Confirmation) checkoutResponse {
	if c == nil {
		return checkoutResponse{}
	}
	items := make([]orderLineItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, orderLineItemResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: checkoutsvc.Display(item.Product.Price),
			Quantity:  item.Quantity,
			LineTotal: checkoutsvc.Display(item.LineTotal),
		})
	}
	return checkoutResponse{
		OrderNumber: c.OrderNumber,
		PlacedAt:    c.PlacedAt.Format(time.RFC3339),
		Email:       c.Email,
		ShipTo:      c.ShipTo,
		Items:       items,
		ItemCount:   c.ItemCount,
		Totals:      newTotalsResponse(c.Totals),
		CardLast4:   c.CardLast4,
	}
}

func sessionIDFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session context missing")
	}
	return sessionID, nil
}
