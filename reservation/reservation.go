// Package reservation implements the stock reservation protocol: the only
// path, besides direct admin edits, allowed to change a product's quantity.
//
// The shape is read-verify-conditional-write. The read-then-check gives the
// caller a product-naming error while stock is visibly short; the write
// re-asserts the floor invariant inside the UPDATE itself, so a concurrent
// reservation that lands in between makes this one fail instead of driving
// the quantity negative.
package reservation

import (
	"context"
	"errors"

	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
)

// StockRepository is the slice of the inventory repository the protocol
// needs. ReserveStock must be conditional: it applies the decrement only
// while quantity >= qty still holds, and reports ErrUpdateFailed otherwise.
type StockRepository interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	ReserveStock(ctx context.Context, id string, qty int) error
	ReleaseStock(ctx context.Context, id string, qty int) error
}

type Reserver struct {
	repo StockRepository
}

func NewReserver(repo StockRepository) *Reserver {
	return &Reserver{repo: repo}
}

// Reserve commits qty units of the product to an order. There is no partial
// reservation: either the full quantity is decremented or nothing is.
//
// Errors: ErrNotFound if the product is absent, *StockError if stock is
// visibly short, ErrUpdateFailed if the conditional write lost a race and
// the caller should retry or abort.
func (r *Reserver) Reserve(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		return errs.Validation("quantity must be a positive integer")
	}

	product, err := r.repo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotFound
		}
		return err
	}

	if product.Quantity < qty {
		return &errs.StockError{ProductID: product.ID, Name: product.Name}
	}

	return r.repo.ReserveStock(ctx, productID, qty)
}

// Release returns qty units to stock, compensating a prior Reserve.
func (r *Reserver) Release(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		return errs.Validation("quantity must be a positive integer")
	}
	return r.repo.ReleaseStock(ctx, productID, qty)
}
