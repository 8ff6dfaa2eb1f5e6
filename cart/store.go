package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"coopmarket.io/checkout/models"
)

// Store owns the buyer's in-progress cart. It is the only writer of cart
// state; every mutation persists a snapshot so a reload reconstructs the same
// cart. It makes no network calls.
type Store interface {
	Get() *models.Cart
	AddItem(ctx context.Context, item models.CartItem, quantity uint64) error
	UpdateQuantity(ctx context.Context, productID string, quantity int64) error
	RemoveItem(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
	// OnChange registers the single observer notified with a snapshot after
	// every persisted mutation. Invoked synchronously under the store lock;
	// the observer must not call back into the store.
	OnChange(fn func(*models.Cart))
}

type store struct {
	storage Storage
	logger  *zap.Logger

	mu       sync.RWMutex
	cart     *models.Cart
	onChange func(*models.Cart)
}

// NewStore rehydrates the cart from storage; a missing snapshot starts an
// empty cart.
func NewStore(ctx context.Context, storage Storage, logger *zap.Logger) (Store, error) {
	cartModel, err := storage.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		cartModel = models.NewCart()
	} else if err != nil {
		return nil, fmt.Errorf("failed to rehydrate cart: %w", err)
	}

	return &store{
		storage: storage,
		logger:  logger,
		cart:    cartModel,
	}, nil
}

func (s *store) Get() *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// AddItem inserts the item or, when the product is already in the cart,
// increases its quantity. The resulting quantity is always clamped to the
// item's available stock when that is known; the same policy applies on every
// entry point so the marketplace page and the cart page agree.
func (s *store) AddItem(ctx context.Context, item models.CartItem, quantity uint64) error {
	if quantity == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.cart.Find(item.ProductID); existing != nil {
		existing.Quantity = clamp(existing.Quantity+quantity, existing.Available)
	} else {
		item.Quantity = clamp(quantity, item.Available)
		s.cart.Items = append(s.cart.Items, item)
	}

	return s.persist(ctx)
}

// UpdateQuantity replaces the item's quantity. A quantity ≤ 0 removes the item
// entirely; the cart never holds a non-positive quantity.
func (s *store) UpdateQuantity(ctx context.Context, productID string, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID)
		return s.persist(ctx)
	}

	item := s.cart.Find(productID)
	if item == nil {
		return nil
	}
	item.Quantity = clamp(uint64(quantity), item.Available)

	return s.persist(ctx)
}

// RemoveItem removes the item unconditionally; absent products are a no-op.
func (s *store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(productID)
	return s.persist(ctx)
}

// Clear empties the cart. Called only as the terminal effect of a successfully
// created order.
func (s *store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = models.NewCart()
	if err := s.storage.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear cart snapshot: %w", err)
	}
	if s.onChange != nil {
		s.onChange(s.cart.Clone())
	}
	return nil
}

func (s *store) remove(productID string) {
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == productID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			return
		}
	}
}

func (s *store) OnChange(fn func(*models.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *store) persist(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.cart); err != nil {
		return fmt.Errorf("failed to persist cart snapshot: %w", err)
	}
	if s.onChange != nil {
		s.onChange(s.cart.Clone())
	}
	return nil
}

func clamp(quantity, available uint64) uint64 {
	if available > 0 && quantity > available {
		return available
	}
	return quantity
}
