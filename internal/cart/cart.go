// Package cart implements the shopping-cart state container: line items, a
// denormalized running quantity and the chosen payment method, mirrored to
// local device storage on every mutation.
package cart

import (
	"fmt"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/higuga/higuga/internal/errs"
	"github.com/higuga/higuga/internal/localstore"
	"github.com/higuga/higuga/internal/model"
)

// Store holds the cart. All mutations keep the invariant that the running
// quantity equals the sum of line-item quantities, and persist state so it
// survives a restart.
type Store struct {
	mu       sync.Mutex
	storage  localstore.Store
	items    []model.CartItem
	quantity int
	payment  string
}

// New constructs a cart rehydrated synchronously from storage. Corrupt or
// missing keys start the cart empty.
func New(storage localstore.Store) *Store {
	s := &Store{storage: storage}
	var items []model.CartItem
	if err := storage.Load(localstore.KeyCartProducts, &items); err == nil && len(items) > 0 {
		s.items = items
	}
	var qty int
	if err := storage.Load(localstore.KeyCartQuantity, &qty); err == nil && qty > 0 {
		s.quantity = qty
	}
	var payment string
	if err := storage.Load(localstore.KeyPaymentMethod, &payment); err == nil {
		s.payment = payment
	}
	return s
}

// Items returns a copy of the cart lines.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartItem(nil), s.items...)
}

// Quantity returns the denormalized total quantity.
func (s *Store) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

// PaymentMethod returns the chosen payment method ("" when none).
func (s *Store) PaymentMethod() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment
}

// Total is the sum of price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Add puts qty units of product into the cart. Zero qty is a no-op. An
// existing line only grows while the new quantity stays within stock;
// otherwise the cart is left untouched and ErrInsufficientStock is returned.
func (s *Store) Add(p model.Product, qty int) error {
	if qty == 0 {
		return nil
	}
	if qty < 0 {
		return fmt.Errorf("cart: negative quantity %d", qty)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(p.ID)
	if idx < 0 {
		if qty > p.Stock {
			return errs.ErrInsufficientStock
		}
		s.items = append(s.items, model.CartItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Stock:    p.Stock,
			ImageURL: p.ImageURL,
			Quantity: qty,
		})
		s.quantity += qty
		return s.persistItems()
	}

	if s.items[idx].Quantity+qty > s.items[idx].Stock {
		return errs.ErrInsufficientStock
	}
	s.items[idx].Quantity += qty
	s.quantity += qty
	return s.persistItems()
}

// Increment grows one line by 1, clamped to the product stock.
func (s *Store) Increment(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.find(id)
	if idx < 0 {
		return errs.ErrNotFound
	}
	if s.items[idx].Quantity+1 > s.items[idx].Stock {
		return errs.ErrInsufficientStock
	}
	s.items[idx].Quantity++
	s.quantity++
	return s.persistItems()
}

// Decrement shrinks one line by 1 but never below 1; removal is the explicit
// path. A blocked decrement leaves the cart unchanged and returns nil.
func (s *Store) Decrement(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.find(id)
	if idx < 0 {
		return errs.ErrNotFound
	}
	if s.items[idx].Quantity-1 < 1 {
		return nil
	}
	s.items[idx].Quantity--
	s.quantity--
	return s.persistItems()
}

// Remove deletes the line entirely. When the cart empties, the chosen
// payment method is cleared with it.
func (s *Store) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.find(id)
	if idx < 0 {
		return errs.ErrNotFound
	}
	s.quantity -= s.items[idx].Quantity
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if err := s.persistItems(); err != nil {
		return err
	}
	if len(s.items) == 0 {
		s.payment = ""
		return s.storage.Delete(localstore.KeyPaymentMethod)
	}
	return nil
}

// ChoosePayment records the payment method for checkout.
func (s *Store) ChoosePayment(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = method
	return s.storage.Save(localstore.KeyPaymentMethod, method)
}

// Clean resets items, quantity and payment method together.
func (s *Store) Clean() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.quantity = 0
	s.payment = ""
	for _, key := range []string{
		localstore.KeyCartProducts,
		localstore.KeyCartQuantity,
		localstore.KeyPaymentMethod,
	} {
		if err := s.storage.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// find returns the index of the line for id, or -1. Caller holds the lock.
func (s *Store) find(id uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persistItems mirrors lines and quantity to storage. Caller holds the lock.
func (s *Store) persistItems() error {
	if err := s.storage.Save(localstore.KeyCartProducts, s.items); err != nil {
		return err
	}
	return s.storage.Save(localstore.KeyCartQuantity, s.quantity)
}
