package cart

import (
	"errors"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

var (
	// ErrInvalidQuantity is the cause of every rejected quantity below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrItemNotFound is the cause when a product has no line item in the cart.
	ErrItemNotFound = errors.New("cart item not found")
)

func invalidQuantity(productID string, quantity int) error {
	return pkgerrors.Wrap(pkgerrors.CodeInvalidQuantity, ErrInvalidQuantity, ErrInvalidQuantity.Error()).
		WithDetails(map[string]any{"product_id": productID, "quantity": quantity})
}

func itemNotFound(productID string) error {
	return pkgerrors.Wrap(pkgerrors.CodeNotFound, ErrItemNotFound, ErrItemNotFound.Error()).
		WithDetails(map[string]any{"product_id": productID})
}
