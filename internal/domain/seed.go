package domain

import "github.com/shopspring/decimal"

// DefaultProducts is the catalog used when nothing has been persisted yet
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Minimalist Desk Lamp",
			Price:       decimal.RequireFromString("89.99"),
			Quantity:    15,
			Description: "A sleek, adjustable desk lamp with warm LED lighting, perfect for late-night study sessions.",
			Category:    CategoryHome,
			Image:       "https://picsum.photos/400/400?random=1",
		},
		{
			ID:          "2",
			Name:        "Pastel Ceramic Vase",
			Price:       decimal.RequireFromString("45.00"),
			Quantity:    8,
			Description: "Handcrafted ceramic vase in a soft blush pink finish. Adds a touch of elegance to any room.",
			Category:    CategoryArt,
			Image:       "https://picsum.photos/400/400?random=2",
		},
		{
			ID:          "3",
			Name:        "Wireless Noise-Canceling Headphones",
			Price:       decimal.RequireFromString("199.50"),
			Quantity:    20,
			Description: "Immerse yourself in music with these high-fidelity wireless headphones featuring active noise cancellation.",
			Category:    CategoryElectronics,
			Image:       "https://picsum.photos/400/400?random=3",
		},
		{
			ID:          "4",
			Name:        "Organic Cotton Tee",
			Price:       decimal.RequireFromString("29.99"),
			Quantity:    50,
			Description: "Soft, breathable organic cotton t-shirt available in earth tones. Sustainable fashion choice.",
			Category:    CategoryFashion,
			Image:       "https://picsum.photos/400/400?random=4",
		},
	}
}
