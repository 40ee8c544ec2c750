package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
)

// ListQuery is the filter/sort surface of the product table. All set fields
// are conjunctive; Search alone fans out as an OR across name, category and
// description.
type ListQuery struct {
	Category  string // exact match
	ExcludeID string // omit this product (related-products lookups)
	Featured  bool
	Search    string // case-insensitive substring
	PriceSort string // "asc" or "desc"; empty leaves ordering unspecified
}

// InventoryRepository owns durable product records. It is the only code that
// touches the products table; quantity changes go through ReserveStock and
// ReleaseStock or through the admin Update path.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}
	return &product, nil
}

// GetByIDs fetches all named products in one query. Missing ids are simply
// absent from the result; the caller decides whether that is an error.
func (r *InventoryRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

func (r *InventoryRepository) List(ctx context.Context, q ListQuery) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.ExcludeID != "" {
		query = query.Where("id <> ?", q.ExcludeID)
	}
	if q.Featured {
		query = query.Where("featured = ?", true)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("name ILIKE ? OR category ILIKE ? OR description ILIKE ?", like, like, like)
	}
	switch q.PriceSort {
	case "asc":
		query = query.Order("price ASC")
	case "desc":
		query = query.Order("price DESC")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *InventoryRepository) Create(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update overwrites all mutable fields of an existing product, including a
// direct quantity correction. Admin-only; ordinary stock movement must use
// ReserveStock/ReleaseStock.
func (r *InventoryRepository) Update(ctx context.Context, p *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", p.ID).
		Select("name", "price", "quantity", "discount", "category", "featured", "is_seasonal", "description", "image").
		Updates(p)
	if res.Error != nil {
		return fmt.Errorf("update product %s: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ReserveStock decrements quantity by qty only while the floor invariant
// still holds: the guard rides in the WHERE clause so two concurrent
// reservations can never drive the row negative. Zero rows affected means
// the stock changed underneath the caller's read.
func (r *InventoryRepository) ReserveStock(ctx context.Context, id string, qty int) error {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`,
		qty, id, qty,
	)
	if res.Error != nil {
		return fmt.Errorf("reserve stock for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrUpdateFailed
	}
	return nil
}

// ReleaseStock re-credits quantity previously taken by ReserveStock.
func (r *InventoryRepository) ReleaseStock(ctx context.Context, id string, qty int) error {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE products SET quantity = quantity + ? WHERE id = ?`,
		qty, id,
	)
	if res.Error != nil {
		return fmt.Errorf("release stock for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrUpdateFailed
	}
	return nil
}
