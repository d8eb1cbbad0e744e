package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shopease-server/models"
	"shopease-server/storage"
	"shopease-server/utils"

	"go.uber.org/zap"
)

// CartEventKind tags the outcome of a cart mutation.
type CartEventKind string

const (
	CartItemAdded   CartEventKind = "item_added"
	CartItemRemoved CartEventKind = "item_removed"
	CartQuantitySet CartEventKind = "quantity_set"
	CartCleared     CartEventKind = "cart_cleared"
	CartUnchanged   CartEventKind = "unchanged"
)

// CartEvent describes what a mutation did. Mutations return events instead
// of notifying anyone directly, so the notification side effect lives with
// whoever owns the request, not inside the state transition.
type CartEvent struct {
	Kind         CartEventKind
	ProductTitle string
	Quantity     int
}

// CartStore holds one cart per user: the line items plus their derived
// totals. Line items (and only line items) are persisted on every change and
// restored on first touch; totals are always recomputed, never trusted from
// storage. Mutations are serialized: one fully applies, totals included,
// before the next is accepted.
type CartStore struct {
	store  storage.Store
	logger *zap.Logger

	mu    sync.Mutex
	carts map[int]*models.Cart
}

func NewCartStore(store storage.Store, logger *zap.Logger) *CartStore {
	return &CartStore{
		store:  store,
		logger: logger,
		carts:  make(map[int]*models.Cart),
	}
}

func cartKey(userID int) string {
	return fmt.Sprintf("cart_%d", userID)
}

// AddItem puts one unit of a product into the user's cart. A product already
// present gets its quantity bumped instead of a second line item.
func (s *CartStore) AddItem(ctx context.Context, userID int, p models.Product) (CartEvent, models.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	if line := findLine(c, p.ID); line != nil {
		s.applyQuantity(ctx, userID, c, p.ID, line.Quantity+1)
		return CartEvent{Kind: CartItemAdded, ProductTitle: p.Title, Quantity: line.Quantity}, snapshot(c)
	}

	c.Items = append(c.Items, models.CartLineItem{
		ProductID:          p.ID,
		Title:              p.Title,
		Thumbnail:          p.Thumbnail,
		Category:           p.Category,
		Brand:              p.Brand,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Quantity:           1,
		// UTC, so the timestamp round-trips through the persisted document
		// unchanged.
		AddedAt: time.Now().UTC(),
	})
	c.Totals = CalculateTotals(c.Items)
	s.persist(ctx, userID, c)
	return CartEvent{Kind: CartItemAdded, ProductTitle: p.Title, Quantity: 1}, snapshot(c)
}

// RemoveItem deletes a line item if present. Totals are recomputed either
// way; the removal event is only emitted when something was actually there.
func (s *CartStore) RemoveItem(ctx context.Context, userID, productID int) (CartEvent, models.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	ev := s.applyQuantity(ctx, userID, c, productID, 0)
	return ev, snapshot(c)
}

// UpdateQuantity sets a line item's quantity. Anything at or below zero
// removes the line instead; no stock clamping happens at this layer.
func (s *CartStore) UpdateQuantity(ctx context.Context, userID, productID, quantity int) (CartEvent, models.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	ev := s.applyQuantity(ctx, userID, c, productID, quantity)
	return ev, snapshot(c)
}

// Clear empties the cart and zeroes the totals.
func (s *CartStore) Clear(ctx context.Context, userID int) (CartEvent, models.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(ctx, userID)
	c.Items = nil
	c.Totals = CalculateTotals(c.Items)
	s.persist(ctx, userID, c)
	return CartEvent{Kind: CartCleared}, snapshot(c)
}

// Get returns a copy of the user's cart, restoring it from storage on first
// touch.
func (s *CartStore) Get(ctx context.Context, userID int) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.cart(ctx, userID))
}

// CalculateTotals derives cart totals from line items. It is the single
// source of truth for totals: pure, idempotent, and run after every mutation
// and every restore. Monetary fields are rounded to 2 decimals as stored.
func CalculateTotals(items []models.CartLineItem) models.CartTotals {
	var t models.CartTotals
	for _, item := range items {
		unit := utils.DiscountedPrice(item.Price, item.DiscountPercentage)
		t.ItemCount += item.Quantity
		t.Subtotal += unit * float64(item.Quantity)
	}
	t.Subtotal = utils.Round2(t.Subtotal)
	t.Tax = utils.Round2(t.Subtotal * utils.TaxRate)
	if t.Subtotal > 0 && t.Subtotal < utils.FreeShippingThreshold {
		t.Shipping = utils.ShippingFee
	}
	t.Total = utils.Round2(t.Subtotal + t.Tax + t.Shipping)
	return t
}

// cart returns the live cart for a user, restoring it from storage the first
// time. Totals are recomputed after restore: the persisted snapshot holds
// line items only and may predate the current pricing constants.
func (s *CartStore) cart(ctx context.Context, userID int) *models.Cart {
	if c, ok := s.carts[userID]; ok {
		return c
	}

	c := &models.Cart{}
	var doc models.CartDocument
	err := s.store.Get(ctx, cartKey(userID), &doc)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// No persisted cart, start empty.
	case err != nil:
		s.logger.Warn("failed to restore cart, starting empty",
			zap.Int("user_id", userID), zap.Error(err))
	case doc.SchemaVersion != models.CartSchemaVersion:
		s.logger.Warn("discarding persisted cart with unknown schema version",
			zap.Int("user_id", userID), zap.Int("schema_version", doc.SchemaVersion))
	default:
		c.Items = doc.Items
	}

	c.Totals = CalculateTotals(c.Items)
	s.carts[userID] = c
	return c
}

// applyQuantity is the shared quantity write path: qty <= 0 removes the
// line, anything else sets it. Totals are recomputed and line items
// persisted before it returns, even when nothing matched.
func (s *CartStore) applyQuantity(ctx context.Context, userID int, c *models.Cart, productID, quantity int) CartEvent {
	ev := CartEvent{Kind: CartUnchanged}

	if quantity <= 0 {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				ev = CartEvent{Kind: CartItemRemoved, ProductTitle: c.Items[i].Title}
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				break
			}
		}
	} else if line := findLine(c, productID); line != nil {
		line.Quantity = quantity
		ev = CartEvent{Kind: CartQuantitySet, ProductTitle: line.Title, Quantity: quantity}
	}

	c.Totals = CalculateTotals(c.Items)
	s.persist(ctx, userID, c)
	return ev
}

func (s *CartStore) persist(ctx context.Context, userID int, c *models.Cart) {
	doc := models.CartDocument{SchemaVersion: models.CartSchemaVersion, Items: c.Items}
	if err := s.store.Put(ctx, cartKey(userID), doc); err != nil {
		s.logger.Error("failed to persist cart", zap.Int("user_id", userID), zap.Error(err))
	}
}

func findLine(c *models.Cart, productID int) *models.CartLineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func snapshot(c *models.Cart) models.Cart {
	out := models.Cart{Totals: c.Totals}
	if len(c.Items) > 0 {
		out.Items = make([]models.CartLineItem, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}
