package cart

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	// Quantity defaults to one when omitted, matching the add-to-cart button.
	Quantity *int `json:"quantity,omitempty" validate:"omitempty,max=999"`
}

func (r addItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// Only the upper bound is checked here so the cart reports INVALID_QUANTITY for values below one.
type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=999"`
}
