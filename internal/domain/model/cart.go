package model

// CartItem is one line in the shopper's cart.
type CartItem struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`

	// Product is a denormalized snapshot the backend includes for display.
	Product *Product `json:"product,omitempty"`
}

// Cart is the shopper's full cart.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalPrice int64      `json:"totalPrice"`
}

// CartAdd adds a product to the cart.
type CartAdd struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CartQuantityUpdate changes the quantity of one cart line.
type CartQuantityUpdate struct {
	Quantity int `json:"quantity"`
}
