package productcontroller

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aayushsiwach/fruit-seller/catalog"
	"github.com/aayushsiwach/fruit-seller/models"
)

// Catalog is the read path handlers depend on.
type Catalog interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, q catalog.Query) ([]models.Product, error)
}

// Inventory is the admin mutation path: a direct overwrite of product
// records that bypasses the reservation protocol.
type Inventory interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

type productInput struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
	Quantity    *int             `json:"quantity"`
	Discount    int              `json:"discount"`
	IsSeasonal  bool             `json:"is_seasonal"`
	Featured    bool             `json:"featured"`
}

// validate enforces the admin-path field rules: required name, price,
// category and quantity; non-negative price and quantity; discount within
// 0-100; category from the fixed set.
func (in *productInput) validate() string {
	if in.Name == "" || in.Price == nil || in.Category == "" || in.Quantity == nil {
		return "Missing required fields"
	}
	if in.Price.IsNegative() {
		return "Price must be non-negative"
	}
	if *in.Quantity < 0 {
		return "Quantity must be non-negative"
	}
	if in.Discount < 0 || in.Discount > 100 {
		return "Discount must be between 0 and 100"
	}
	if !models.ValidCategory(in.Category) {
		return "Unknown category"
	}
	return ""
}

func (in *productInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Price = *in.Price
	p.Quantity = *in.Quantity
	p.Discount = in.Discount
	p.Category = in.Category
	p.IsSeasonal = in.IsSeasonal
	p.Featured = in.Featured
	p.Description = in.Description
	p.Image = in.Image
}
