package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cartdomain "github.com/sheikhstore/storefront/internal/domain/cart"
	"github.com/sheikhstore/storefront/internal/domain/catalog"
)

// Notifier receives the user-visible confirmation when an item lands in
// the cart. The presentation layer decides how to show it.
type Notifier interface {
	ItemAdded(product catalog.Product)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// ItemAdded implements Notifier.
func (NopNotifier) ItemAdded(catalog.Product) {}

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	Logger *zap.Logger
}

// ItemAdded implements Notifier.
func (n LogNotifier) ItemAdded(product catalog.Product) {
	n.Logger.Info("product added to cart",
		zap.Int64("product_id", product.ID),
		zap.String("product_name", product.Name))
}

// Service is the shop context's cart: the single owner of cart state.
// Mutations are serialized by a mutex so every operation runs to
// completion before the next begins, matching the single event loop the
// cart semantics assume. Persistence is write-behind: the in-memory
// transition always succeeds, and a failed write is logged and swallowed.
type Service struct {
	mu       sync.Mutex
	cart     *cartdomain.Cart
	store    cartdomain.Store
	notifier Notifier
	logger   *zap.Logger
}

// NewService builds the cart service and hydrates it once from the
// store. A missing snapshot starts the cart empty; a malformed or
// unreadable one does the same after a warning. Hydration never fails
// the application.
func NewService(ctx context.Context, store cartdomain.Store, notifier Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		cart:     cartdomain.New(),
		store:    store,
		notifier: notifier,
		logger:   logger,
	}

	if store != nil {
		items, err := store.Load(ctx)
		if err != nil {
			logger.Warn("failed to load saved cart, starting empty", zap.Error(err))
		} else if len(items) > 0 {
			s.cart.Replace(items)
			logger.Info("cart restored from storage", zap.Int("line_items", len(items)))
		}
	}
	return s
}

// persist writes the full current sequence. Callers must hold the lock.
func (s *Service) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.cart.Items()); err != nil {
		s.logger.Warn("failed to persist cart, in-memory state remains authoritative", zap.Error(err))
	}
}

// Add puts a product into the cart and returns the resulting line item.
// Stock is not checked here; the catalog surface withholds the add action
// for out-of-stock products.
func (s *Service) Add(ctx context.Context, product catalog.Product, quantity int, color string) cartdomain.LineItem {
	s.mu.Lock()
	item := s.cart.AddItem(product, quantity, color)
	s.persist(ctx)
	s.mu.Unlock()

	s.notifier.ItemAdded(product)
	return item
}

// Remove deletes every variant of the product from the cart.
func (s *Service) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(productID)
	s.persist(ctx)
}

// UpdateQuantity sets the quantity for the product's rows; non-positive
// values remove them.
func (s *Service) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(productID, quantity)
	s.persist(ctx)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.persist(ctx)
}

// SetOpen sets the cart-panel visibility flag. The flag is session-local
// and never persisted.
func (s *Service) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetOpen(open)
}

// ToggleOpen flips the cart-panel visibility flag.
func (s *Service) ToggleOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ToggleOpen()
}

// IsOpen returns the cart-panel visibility flag.
func (s *Service) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsOpen()
}

// Items returns the line items in insertion order.
func (s *Service) Items() []cartdomain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// Snapshot is Items under its workflow-facing name: the order workflow
// captures the sequence it will submit.
func (s *Service) Snapshot() []cartdomain.LineItem {
	return s.Items()
}

// Total returns the current cart total.
func (s *Service) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// ItemCount returns the badge count (sum of quantities).
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// IsEmpty returns true when the cart has no rows.
func (s *Service) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}
