// Package orders converts a validated cart into a stock-decrementing order.
package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
)

type Inventory interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type Reserver interface {
	Reserve(ctx context.Context, productID string, qty int) error
	Release(ctx context.Context, productID string, qty int) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userRef string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *models.Order) error
}

type Service struct {
	inventory Inventory
	reserver  Reserver
	store     OrderStore
	publisher Publisher
}

func NewService(inventory Inventory, reserver Reserver, store OrderStore, publisher Publisher) *Service {
	return &Service{
		inventory: inventory,
		reserver:  reserver,
		store:     store,
		publisher: publisher,
	}
}

// Create turns a cart into an order. All lines are validated against a
// single bulk product fetch before any stock moves; the first violation
// aborts the whole operation naming the offending product. Only then is
// stock reserved, one line at a time. A failure partway through releases
// the lines already taken, so a failed checkout leaves inventory as it
// found it. The claimed total is persisted as supplied.
func (s *Service) Create(ctx context.Context, userRef string, lines []models.CartLine, claimedTotal decimal.Decimal) (*models.Order, error) {
	if userRef == "" {
		return nil, errs.ErrUnauthorized
	}
	if len(lines) == 0 {
		return nil, errs.Validation("cart is empty")
	}
	if !claimedTotal.IsPositive() {
		return nil, errs.Validation("total must be positive")
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, errs.Validation("quantity must be a positive integer")
		}
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.inventory.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Validation pass: nothing is decremented until every line clears.
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, errs.Validation("product %s not found", line.ProductID)
		}
		if product.Quantity < line.Quantity {
			return nil, &errs.StockError{ProductID: product.ID, Name: product.Name}
		}
	}

	// Reservation pass. Each line is a separate conditional write; if one
	// fails the earlier reservations are released before reporting.
	reserved := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if err := s.reserver.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
			s.releaseAll(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, line)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	order := &models.Order{
		UserRef:   userRef,
		Items:     items,
		Total:     claimedTotal,
		Status:    models.OrderStatusProcessing,
		CreatedAt: time.Now(),
	}

	if err := s.store.Create(ctx, order); err != nil {
		s.releaseAll(ctx, reserved)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		log.Printf("⚠️ Failed to publish order %s: %v", order.ID, err)
	}

	return order, nil
}

// releaseAll compensates reservations after a downstream failure. Release
// failures are logged and abandoned; stock drift is then visible to admins
// through the catalog rather than silently retried.
func (s *Service) releaseAll(ctx context.Context, reserved []models.CartLine) {
	for _, line := range reserved {
		if err := s.reserver.Release(ctx, line.ProductID, line.Quantity); err != nil {
			log.Printf("⚠️ Failed to release %d of product %s: %v", line.Quantity, line.ProductID, err)
		}
	}
}

// GetForUser fetches one order, refusing to show another shopper's.
func (s *Service) GetForUser(ctx context.Context, userRef, orderID string) (*models.Order, error) {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserRef != userRef {
		return nil, errs.ErrForbidden
	}
	return order, nil
}

func (s *Service) ListForUser(ctx context.Context, userRef string) ([]models.Order, error) {
	return s.store.ListByUser(ctx, userRef)
}

func (s *Service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.store.ListAll(ctx)
}

// UpdateStatus applies an administrative status transition.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	return s.store.UpdateStatus(ctx, orderID, status)
}
