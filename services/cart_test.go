package services

import (
	"context"
	"testing"

	"shopease-server/models"
	"shopease-server/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCartStore(t *testing.T) (*CartStore, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewCartStore(store, zap.NewNop()), store
}

func testProduct(id int, title string, price, discount float64) models.Product {
	return models.Product{
		ID:                 id,
		Title:              title,
		Price:              price,
		DiscountPercentage: discount,
		Brand:              "Acme",
		Category:           "gadgets",
		Thumbnail:          "https://example.com/thumb.jpg",
	}
}

func TestAddItemMergesDuplicateProducts(t *testing.T) {
	cs, _ := newTestCartStore(t)
	ctx := context.Background()

	p := testProduct(1, "Widget", 10, 0)
	ev, cart := cs.AddItem(ctx, 7, p)
	require.Equal(t, CartItemAdded, ev.Kind)
	require.Equal(t, "Widget", ev.ProductTitle)
	require.Len(t, cart.Items, 1)

	_, cart = cs.AddItem(ctx, 7, p)
	require.Len(t, cart.Items, 1, "same product must not create a second line item")
	require.Equal(t, 2, cart.Items[0].Quantity)
	require.Equal(t, 2, cart.Totals.ItemCount)
}

func TestCartInvariantsAcrossMutationSequences(t *testing.T) {
	cs, _ := newTestCartStore(t)
	ctx := context.Background()
	const userID = 1

	cs.AddItem(ctx, userID, testProduct(1, "A", 5, 0))
	cs.AddItem(ctx, userID, testProduct(2, "B", 7, 0))
	cs.AddItem(ctx, userID, testProduct(1, "A", 5, 0))
	cs.UpdateQuantity(ctx, userID, 2, 5)
	cs.RemoveItem(ctx, userID, 99) // absent, no-op
	cs.UpdateQuantity(ctx, userID, 1, -3)
	_, cart := cs.AddItem(ctx, userID, testProduct(3, "C", 1, 0))

	seen := map[int]bool{}
	for _, item := range cart.Items {
		require.False(t, seen[item.ProductID], "duplicate line item for product %d", item.ProductID)
		seen[item.ProductID] = true
		require.GreaterOrEqual(t, item.Quantity, 1)
	}
	require.False(t, seen[1], "product 1 was removed via non-positive quantity")
	require.True(t, seen[2])
	require.True(t, seen[3])
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	cs, _ := newTestCartStore(t)
	ctx := context.Background()

	cs.AddItem(ctx, 1, testProduct(1, "Widget", 10, 0))
	ev, cart := cs.UpdateQuantity(ctx, 1, 1, 0)
	require.Equal(t, CartItemRemoved, ev.Kind)
	require.Empty(t, cart.Items)
	require.Equal(t, models.CartTotals{}, cart.Totals)
}

func TestRemoveAbsentItemStillRecomputesButNoEvent(t *testing.T) {
	cs, _ := newTestCartStore(t)
	ctx := context.Background()

	cs.AddItem(ctx, 1, testProduct(1, "Widget", 10, 0))
	ev, cart := cs.RemoveItem(ctx, 1, 42)
	require.Equal(t, CartUnchanged, ev.Kind)
	require.Len(t, cart.Items, 1)
	require.Equal(t, CalculateTotals(cart.Items), cart.Totals)
}

func TestTotalsWorkedExample(t *testing.T) {
	// One item at $20.00, 10% discount, quantity 3:
	// subtotal 54.00, tax 4.32, shipping 5.99, total 64.31.
	cs, _ := newTestCartStore(t)
	ctx := context.Background()

	cs.AddItem(ctx, 1, testProduct(1, "Deal", 20, 10))
	cs.UpdateQuantity(ctx, 1, 1, 3)
	cart := cs.Get(ctx, 1)

	require.Equal(t, 3, cart.Totals.ItemCount)
	require.Equal(t, 54.00, cart.Totals.Subtotal)
	require.Equal(t, 4.32, cart.Totals.Tax)
	require.Equal(t, 5.99, cart.Totals.Shipping)
	require.Equal(t, 64.31, cart.Totals.Total)
}

func TestFreeShippingAtThreshold(t *testing.T) {
	cs, _ := newTestCartStore(t)
	ctx := context.Background()

	cs.AddItem(ctx, 1, testProduct(1, "Big", 50, 0))
	cs.UpdateQuantity(ctx, 1, 1, 2) // subtotal exactly 100.00
	cart := cs.Get(ctx, 1)

	require.Equal(t, 100.00, cart.Totals.Subtotal)
	require.Equal(t, 0.00, cart.Totals.Shipping, "shipping is waived at the free-shipping threshold")
	require.Equal(t, 108.00, cart.Totals.Total)
}

func TestCalculateTotalsIdempotent(t *testing.T) {
	items := []models.CartLineItem{
		{ProductID: 1, Price: 19.99, DiscountPercentage: 12.5, Quantity: 2},
		{ProductID: 2, Price: 3.49, Quantity: 7},
	}
	first := CalculateTotals(items)
	second := CalculateTotals(items)
	require.Equal(t, first, second)
}

func TestClearCartResetsTotalsAndEmitsEvent(t *testing.T) {
	cs, _ := newTestCartStore(t)
	ctx := context.Background()

	cs.AddItem(ctx, 1, testProduct(1, "Widget", 10, 0))
	ev, cart := cs.Clear(ctx, 1)
	require.Equal(t, CartCleared, ev.Kind)
	require.Empty(t, cart.Items)
	require.Equal(t, models.CartTotals{}, cart.Totals)
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	cs := NewCartStore(store, zap.NewNop())
	cs.AddItem(ctx, 1, testProduct(1, "Widget", 20, 10))
	cs.UpdateQuantity(ctx, 1, 1, 3)
	before := cs.Get(ctx, 1)

	// A fresh store over the same directory restores line items and
	// recomputes totals rather than trusting any persisted snapshot.
	restored := NewCartStore(store, zap.NewNop())
	after := restored.Get(ctx, 1)

	require.Equal(t, before.Items, after.Items)
	require.Equal(t, CalculateTotals(before.Items), after.Totals)
	require.Equal(t, before.Totals, after.Totals)
}

func TestUnknownSchemaVersionDiscarded(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	doc := models.CartDocument{
		SchemaVersion: 99,
		Items:         []models.CartLineItem{{ProductID: 1, Title: "Old", Price: 10, Quantity: 2}},
	}
	require.NoError(t, store.Put(ctx, "cart_1", doc))

	cs := NewCartStore(store, zap.NewNop())
	cart := cs.Get(ctx, 1)
	require.Empty(t, cart.Items, "incompatible persisted cart must be discarded")
	require.Equal(t, models.CartTotals{}, cart.Totals)
}

func TestSnapshotIsACopy(t *testing.T) {
	cs, _ := newTestCartStore(t)
	ctx := context.Background()

	_, cart := cs.AddItem(ctx, 1, testProduct(1, "Widget", 10, 0))
	cart.Items[0].Quantity = 99

	require.Equal(t, 1, cs.Get(ctx, 1).Items[0].Quantity, "callers must not be able to mutate store state")
}
