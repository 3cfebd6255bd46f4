package catalog

import "github.com/shopspring/decimal"

// DefaultProducts returns the storefront's static catalog in display order.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Goat Hub Premium Access Key",
			Description: "Unlock the full potential of Goat Hub with our premium access key. Get exclusive features, priority support, and unlimited access to all premium content and tools.",
			Category:    "Digital Key",
			Price:       decimal.RequireFromString("4.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1633409361618-c73427e4e206?ixlib=rb-4.0.3&q=85&fm=jpg",
				"https://images.unsplash.com/photo-1558591710-4b4a1ae0f04d?ixlib=rb-4.0.3&q=85&fm=jpg",
			},
			Featured: true,
			InStock:  50,
			Rating:   4.9,
		},
		{
			ID:          "2",
			Name:        "Studio Wireless Headphones",
			Description: "Over-ear wireless headphones with active noise cancellation and a 30 hour battery.",
			Category:    "Electronics",
			Price:       decimal.RequireFromString("199.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?ixlib=rb-4.0.3&q=85&fm=jpg",
			},
			Featured: true,
			InStock:  12,
			Rating:   4.7,
		},
		{
			ID:          "3",
			Name:        "Mechanical Keyboard",
			Description: "Hot-swappable 75% keyboard with tactile switches and per-key lighting.",
			Category:    "Electronics",
			Price:       decimal.RequireFromString("129.00"),
			Images: []string{
				"https://images.unsplash.com/photo-1587829741301-dc798b83add3?ixlib=rb-4.0.3&q=85&fm=jpg",
			},
			Featured: false,
			InStock:  0,
			Rating:   4.5,
		},
		{
			ID:          "4",
			Name:        "Creator Toolkit License",
			Description: "Lifetime license for the creator toolkit, including future minor updates.",
			Category:    "Digital Key",
			Price:       decimal.RequireFromString("24.50"),
			Images: []string{
				"https://images.unsplash.com/photo-1555066931-4365d14bab8c?ixlib=rb-4.0.3&q=85&fm=jpg",
			},
			Featured: true,
			InStock:  100,
			Rating:   4.2,
		},
		{
			ID:          "5",
			Name:        "Canvas Weekender Bag",
			Description: "Waxed canvas duffel with leather trim, sized for carry-on.",
			Category:    "Accessories",
			Price:       decimal.RequireFromString("89.95"),
			Images: []string{
				"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?ixlib=rb-4.0.3&q=85&fm=jpg",
				"https://images.unsplash.com/photo-1547949003-9792a18a2601?ixlib=rb-4.0.3&q=85&fm=jpg",
			},
			Featured: false,
			InStock:  7,
			Rating:   4.8,
		},
		{
			ID:          "6",
			Name:        "Enamel Pin Set",
			Description: "Set of three enamel pins with butterfly clutches.",
			Category:    "Accessories",
			Price:       decimal.RequireFromString("12.00"),
			Images: []string{
				"https://images.unsplash.com/photo-1611652022419-a9419f74343d?ixlib=rb-4.0.3&q=85&fm=jpg",
			},
			Featured: true,
			InStock:  40,
			Rating:   3.9,
		},
	}
}
