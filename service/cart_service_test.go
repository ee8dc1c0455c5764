package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/repository"
)

func newTestCartService(t *testing.T) (*CartService, *fakeCartRepo) {
	t.Helper()
	variants := testVariants()
	carts := newFakeCartRepo(variants)
	renderer, err := NewMiniCartRenderer()
	require.NoError(t, err)
	return NewCartService(carts, renderer), carts
}

func intPtr(n int) *int { return &n }

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	svc, carts := newTestCartService(t)

	require.NoError(t, svc.AddToCart(ctx, 1, 10, "2"))
	require.NoError(t, svc.AddToCart(ctx, 1, 10, "abc")) // coerced to 1

	item := carts.itemByVariant(1, 10)
	require.NotNil(t, item)
	assert.Equal(t, 3, item.Quantity)

	err := svc.AddToCart(ctx, 1, 10, "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Equal(t, "Stock insuficiente. Disponible: 3.", UserMessage(err))
}

func TestAddToCart_OutOfStock(t *testing.T) {
	svc, _ := newTestCartService(t)
	err := svc.AddToCart(context.Background(), 1, 11, "1")
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, "Esta variante no tiene stock.", UserMessage(err))
}

func TestAddToCart_UnknownVariant(t *testing.T) {
	svc, _ := newTestCartService(t)
	err := svc.AddToCart(context.Background(), 1, 999, "1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddToCart_ConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, carts := newTestCartService(t)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.AddToCart(ctx, 1, 12, "1"))
		}()
	}
	wg.Wait()

	item := carts.itemByVariant(1, 12)
	require.NotNil(t, item)
	assert.Equal(t, 30, item.Quantity)
}

func TestAddToCart_ConcurrentAddsNeverExceedStock(t *testing.T) {
	ctx := context.Background()
	svc, carts := newTestCartService(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	rejected := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.AddToCart(ctx, 1, 10, "1"); err != nil {
				assert.ErrorIs(t, err, ErrInsufficientStock)
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	item := carts.itemByVariant(1, 10)
	require.NotNil(t, item)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 7, rejected)
}

func TestUpdateItem_ConcurrentDeltasAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, carts := newTestCartService(t)
	require.NoError(t, svc.AddToCart(ctx, 1, 12, "1"))
	item := carts.itemByVariant(1, 12)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateItem(ctx, 1, item.ID, models.CartItemUpdateRequest{Delta: intPtr(1)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 21, carts.itemByVariant(1, 12).Quantity)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	svc, carts := newTestCartService(t)
	require.NoError(t, svc.AddToCart(ctx, 1, 12, "2"))
	item := carts.itemByVariant(1, 12)

	updated, err := svc.UpdateItem(ctx, 1, item.ID, models.CartItemUpdateRequest{Delta: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	updated, err = svc.UpdateItem(ctx, 1, item.ID, models.CartItemUpdateRequest{Qty: intPtr(7), Delta: intPtr(-1)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity, "delta wins over qty")

	_, err = svc.UpdateItem(ctx, 1, item.ID, models.CartItemUpdateRequest{Qty: intPtr(41)})
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 40, stockErr.Available)

	_, err = svc.UpdateItem(ctx, 1, item.ID, models.CartItemUpdateRequest{})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	deleted, err := svc.UpdateItem(ctx, 1, item.ID, models.CartItemUpdateRequest{Qty: intPtr(0)})
	require.NoError(t, err)
	assert.Nil(t, deleted)

	_, err = svc.UpdateItem(ctx, 1, item.ID, models.CartItemUpdateRequest{Qty: intPtr(1)})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestTotalsAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, carts := newTestCartService(t)
	require.NoError(t, svc.AddToCart(ctx, 1, 10, "2"))
	require.NoError(t, svc.AddToCart(ctx, 1, 12, "3"))

	totals, err := svc.Totals(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, totals.Count)
	assert.Equal(t, "54.98", totals.Subtotal.StringFixed(2))
	assert.True(t, totals.CanCheckout)
	assert.Equal(t, 2, totals.ItemsLeft)

	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.True(t, summary.OK)
	assert.Equal(t, 5, summary.CartCount)
	assert.Contains(t, summary.MiniCartHTML, "Camiseta")
	assert.Contains(t, summary.MiniCartHTML, "$54.98")

	// stock dropped below the quantity in the cart
	v := carts.variants.variants[10]
	v.Stock = 1
	carts.variants.variants[10] = v
	totals, err = svc.Totals(ctx, 1)
	require.NoError(t, err)
	assert.False(t, totals.CanCheckout)

	require.NoError(t, svc.Clear(ctx, 1))
	summary, err = svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.CartCount)
	assert.Empty(t, summary.MiniCartHTML)
}
