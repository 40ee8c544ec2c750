// Package cartstore holds a shopper session's cart: an explicit state
// container over a durable session-local document, revalidated against live
// stock on load and after every mutation. The cart is "soft": lines never
// hold a stock reservation; stock is committed only at order creation.
package cartstore

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
)

type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

// ProductGetter provides the point reads revalidation and joins need.
type ProductGetter interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

// Persistence is the durable session-local storage behind the store. Save
// overwrites the whole line list: last writer wins, no merge.
type Persistence interface {
	Load(ctx context.Context, sessionID string) ([]models.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []models.CartLine) error
}

// Notifier receives the user-facing notices mutations emit. Revalidation
// emits at most one aggregated warning per pass, never one per line.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Warning(string) {}
func (NopNotifier) Error(string)   {}

type Store struct {
	mu        sync.Mutex
	state     State
	sessionID string
	lines     []models.CartLine

	products ProductGetter
	persist  Persistence
	notify   Notifier
}

func New(sessionID string, products ProductGetter, persist Persistence, notify Notifier) *Store {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Store{
		state:     Uninitialized,
		sessionID: sessionID,
		products:  products,
		persist:   persist,
		notify:    notify,
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load pulls the persisted line list and revalidates it against live stock.
// A persistence failure surfaces the error and leaves the store unusable.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Loading
	lines, err := s.persist.Load(ctx, s.sessionID)
	if err != nil {
		s.state = Uninitialized
		s.notify.Error("Error loading cart.")
		return err
	}
	s.lines = lines
	s.state = Ready

	s.revalidate(ctx)
	return nil
}

// revalidate reconciles every line with current stock: lines whose product
// is gone are dropped, overdrawn lines are clamped to available stock and
// dropped entirely at zero. Best effort: a failed product fetch leaves that
// line untouched rather than erroring the whole cart. Callers hold s.mu.
func (s *Store) revalidate(ctx context.Context) {
	valid := s.lines[:0]
	changed := false

	for _, line := range s.lines {
		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				changed = true
				continue
			}
			valid = append(valid, line)
			continue
		}
		if line.Quantity > product.Quantity {
			changed = true
			if product.Quantity == 0 {
				continue
			}
			line.Quantity = product.Quantity
		}
		valid = append(valid, line)
	}

	if changed {
		s.lines = valid
		if err := s.persist.Save(ctx, s.sessionID, s.lines); err == nil {
			s.notify.Warning("Adjusted cart: removed or updated unavailable items.")
		}
	}
}

// Revalidate runs a reconciliation pass on demand.
func (s *Store) Revalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return errs.ErrCartNotLoaded
	}
	s.revalidate(ctx)
	return nil
}

// Add upserts a line for the product. The requested total, existing line
// quantity included, must not exceed current stock; failures surface as a
// notice plus ErrInsufficientStock, and the cart is left unchanged.
func (s *Store) Add(ctx context.Context, product *models.Product, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return errs.ErrCartNotLoaded
	}

	if qty < 1 || product.Quantity < qty {
		s.notify.Error("Invalid quantity or insufficient stock.")
		return &errs.StockError{ProductID: product.ID, Name: product.Name}
	}

	idx := s.indexOf(product.ID)
	if idx >= 0 {
		newQty := s.lines[idx].Quantity + qty
		if newQty > product.Quantity {
			s.notify.Error("Cannot add: exceeds available stock.")
			return &errs.StockError{ProductID: product.ID, Name: product.Name}
		}
		s.lines[idx].Quantity = newQty
		s.notify.Success(product.Name + " updated in cart.")
	} else {
		s.lines = append(s.lines, models.CartLine{ProductID: product.ID, Quantity: qty})
		s.notify.Success(product.Name + " added to cart.")
	}

	if err := s.persist.Save(ctx, s.sessionID, s.lines); err != nil {
		return err
	}
	s.revalidate(ctx)
	return nil
}

// Update sets a line's quantity. qty <= 0 removes the line; qty beyond
// maxQty fails with ErrInsufficientStock. Updating an absent line is a
// no-op success.
func (s *Store) Update(ctx context.Context, productID string, qty, maxQty int) error {
	if qty <= 0 {
		return s.Remove(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return errs.ErrCartNotLoaded
	}

	if qty > maxQty {
		s.notify.Error("Cannot update: exceeds available stock.")
		return &errs.StockError{ProductID: productID}
	}

	if idx := s.indexOf(productID); idx >= 0 {
		s.lines[idx].Quantity = qty
	}
	s.notify.Success("Cart updated.")

	if err := s.persist.Save(ctx, s.sessionID, s.lines); err != nil {
		return err
	}
	s.revalidate(ctx)
	return nil
}

// Remove deletes the line unconditionally; removing an absent line is a
// no-op success.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return errs.ErrCartNotLoaded
	}

	if idx := s.indexOf(productID); idx >= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	}
	s.notify.Success("Item removed from cart.")

	if err := s.persist.Save(ctx, s.sessionID, s.lines); err != nil {
		return err
	}
	s.revalidate(ctx)
	return nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return errs.ErrCartNotLoaded
	}

	s.lines = nil
	s.notify.Success("Cart cleared.")
	return s.persist.Save(ctx, s.sessionID, s.lines)
}

// Total sums effective unit price times line quantity over products aligned
// with the line list by index. Unresolved (nil) entries contribute zero.
// Pure; performs no stock validation.
func (s *Store) Total(products []*models.Product) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for i, line := range s.lines {
		if i >= len(products) || products[i] == nil {
			continue
		}
		lineTotal := products[i].EffectivePrice().Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
	}
	return total
}

// Lines returns a copy of the current line list.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, line := range s.lines {
		n += line.Quantity
	}
	return n
}

func (s *Store) indexOf(productID string) int {
	for i, line := range s.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
