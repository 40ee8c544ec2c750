package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Catalog categories. The storefront sells fruit only; the set is fixed
// rather than admin-managed.
const (
	CategoryBerries     = "Berries"
	CategoryCitrus      = "Citrus"
	CategoryTropical    = "Tropical"
	CategoryStoneFruits = "Stone Fruits"
)

var Categories = []string{CategoryBerries, CategoryCitrus, CategoryTropical, CategoryStoneFruits}

// ValidCategory reports whether c is a member of the fixed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	Discount    int             `gorm:"not null;default:0" json:"discount"` // percentage, 0-100
	Category    string          `gorm:"not null" json:"category"`
	Featured    bool            `gorm:"not null;default:false" json:"featured"`
	IsSeasonal  bool            `gorm:"not null;default:false" json:"is_seasonal"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// EffectivePrice is the unit price after discount: price * (1 - discount/100).
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.Discount == 0 {
		return p.Price
	}
	return p.Price.
		Mul(decimal.NewFromInt(int64(100 - p.Discount))).
		Div(decimal.NewFromInt(100))
}
