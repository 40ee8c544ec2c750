package models

// CartLine is one (product, quantity) pair in a shopper's cart. A cart holds
// at most one line per product; line order carries no meaning.
type CartLine struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// CartEntry is a cart line joined with its current product snapshot, as
// returned by GET /cart. Quantity is the line quantity, not the stock.
type CartEntry struct {
	Product
	Quantity int `json:"quantity"`
}
