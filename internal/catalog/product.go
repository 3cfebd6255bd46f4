package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// AllCategories is the sentinel category that selects the whole catalog.
const AllCategories = "All"

// Product is an immutable catalog record.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Featured    bool            `json:"featured"`
	InStock     int             `json:"in_stock"`
	Rating      float64         `json:"rating"`
}

// Available reports whether at least one unit is in stock.
func (p Product) Available() bool {
	return p.InStock > 0
}

// PrimaryImage returns the first image reference used for thumbnails.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	return out
}

func (p Product) validate() error {
	details := map[string]string{}
	if strings.TrimSpace(p.ID) == "" {
		details["id"] = "is required"
	}
	if strings.TrimSpace(p.Name) == "" {
		details["name"] = "is required"
	}
	if strings.TrimSpace(p.Category) == "" {
		details["category"] = "is required"
	} else if p.Category == AllCategories {
		details["category"] = "is reserved"
	}
	if p.Price.IsNegative() {
		details["price"] = "must be non-negative"
	}
	if len(p.Images) == 0 {
		details["images"] = "must contain at least one image"
	}
	if p.InStock < 0 {
		details["in_stock"] = "must be non-negative"
	}
	if p.Rating < 0 || p.Rating > 5 {
		details["rating"] = "must be between 0 and 5"
	}
	if len(details) > 0 {
		details["product_id"] = p.ID
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid catalog product").WithDetails(details)
	}
	return nil
}
