package checkout

import (
	"time"

	"github.com/angelmondragon/storefront-backend/internal/cart"
)

// Quote is the order summary shown before the shopper places an order.
type Quote struct {
	Cart   *cart.View `json:"cart"`
	Totals Totals     `json:"totals"`
}

// Address is where a placed order ships.
type Address struct {
	Name    string `json:"name"`
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Confirmation is returned once an order is placed. It never carries the full card number.
type Confirmation struct {
	OrderNumber string          `json:"order_number"`
	PlacedAt    time.Time       `json:"placed_at"`
	Email       string          `json:"email"`
	ShipTo      Address         `json:"ship_to"`
	Items       []cart.ViewItem `json:"items"`
	ItemCount   int             `json:"item_count"`
	Totals      Totals          `json:"totals"`
	CardLast4   string          `json:"card_last4"`
}

func addressFromForm(f Form) Address {
	return Address{
		Name:    f.FirstName + " " + f.LastName,
		Line1:   f.Address,
		City:    f.City,
		State:   f.State,
		ZipCode: f.ZipCode,
		Country: f.Country,
	}
}

func viewItems(items []cart.LineItem) ([]cart.ViewItem, int) {
	out := make([]cart.ViewItem, 0, len(items))
	count := 0
	for _, item := range items {
		count += item.Quantity
		out = append(out, cart.ViewItem{
			Product:   item.Product,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return out, count
}
