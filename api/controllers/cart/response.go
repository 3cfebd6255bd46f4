package cart

import (
	cartsvc "github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
)

type cartResponse struct {
	Items     []lineItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Totals    totalsResponse     `json:"totals"`
}

type lineItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	InStock   int    `json:"in_stock"`
	LineTotal string `json:"line_total"`
}

type totalsResponse struct {
	Subtotal             string `json:"subtotal"`
	Shipping             string `json:"shipping"`
	Total                string `json:"total"`
	FreeShipping         bool   `json:"free_shipping"`
	AmountToFreeShipping string `json:"amount_to_free_shipping"`
}

func newCartResponse(view *cartsvc.View) cartResponse {
	if view == nil {
		view = &cartsvc.View{}
	}
	items := make([]lineItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, lineItemResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Category:  item.Product.Category,
			Image:     item.Product.PrimaryImage(),
			UnitPrice: checkout.Display(item.Product.Price),
			Quantity:  item.Quantity,
			InStock:   item.Product.InStock,
			LineTotal: checkout.Display(item.LineTotal),
		})
	}
	return cartResponse{
		Items:     items,
		ItemCount: view.ItemCount,
		Totals:    newTotalsResponse(checkout.ComputeTotals(view.Subtotal)),
	}
}

func newTotalsResponse(t checkout.Totals) totalsResponse {
	return totalsResponse{
		Subtotal:             checkout.Display(t.Subtotal),
		Shipping:             checkout.Display(t.Shipping),
		Total:                checkout.Display(t.Total),
		FreeShipping:         t.FreeShipping,
		AmountToFreeShipping: checkout.Display(t.AmountToFreeShipping),
	}
}
