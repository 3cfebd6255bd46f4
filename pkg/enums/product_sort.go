package enums

import "fmt"

// ProductSort selects the ordering applied to catalog listings.
type ProductSort string

const (
	ProductSortDefault      ProductSort = "default"
	ProductSortPriceLowHigh ProductSort = "price-low-high"
	ProductSortPriceHighLow ProductSort = "price-high-low"
	ProductSortRating       ProductSort = "rating"
)

var validProductSorts = []ProductSort{
	ProductSortDefault,
	ProductSortPriceLowHigh,
	ProductSortPriceHighLow,
	ProductSortRating,
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductSort.
func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort converts raw input into a ProductSort. Empty input selects the default ordering.
func ParseProductSort(value string) (ProductSort, error) {
	if value == "" {
		return ProductSortDefault, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
