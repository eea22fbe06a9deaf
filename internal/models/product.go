package models

// Product is a catalogue entry as shown in the storefront.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Stock       int     `json:"stock"`
}

// CartItem is one product line in the cart.
type CartItem struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the persisted cart snapshot.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
