package controller

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/repository"
	"storefront/service"
)

type fakeVariantRepo struct {
	variants map[int64]models.Variant
}

func (f *fakeVariantRepo) GetByID(_ context.Context, id int64) (*models.Variant, error) {
	v, ok := f.variants[id]
	if !ok {
		return nil, fmt.Errorf("variant %d: %w", id, repository.ErrNotFound)
	}
	return &v, nil
}

func (f *fakeVariantRepo) ListByProduct(_ context.Context, productID int64) ([]models.Variant, error) {
	var out []models.Variant
	for _, v := range f.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func testVariants() *fakeVariantRepo {
	return &fakeVariantRepo{variants: map[int64]models.Variant{
		10: {ID: 10, ProductID: 1, ProductName: "Camiseta", Price: decimal.RequireFromString("19.99"), Stock: 3, ColorName: "Rojo", ColorHex: "#FF0000", IsActive: true},
		11: {ID: 11, ProductID: 1, ProductName: "Camiseta", Price: decimal.RequireFromString("21.50"), Stock: 0, IsActive: true},
	}}
}

type fakeZoneRepo struct {
	zones map[int64]models.ShippingZone
	err   error
}

func (f *fakeZoneRepo) GetActiveByID(_ context.Context, id int64) (*models.ShippingZone, error) {
	if f.err != nil {
		return nil, f.err
	}
	z, ok := f.zones[id]
	if !ok || !z.IsActive {
		return nil, fmt.Errorf("shipping zone %d: %w", id, repository.ErrNotFound)
	}
	return &z, nil
}

func (f *fakeZoneRepo) ListActive(_ context.Context) ([]models.ShippingZone, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ShippingZone
	for _, z := range f.zones {
		if z.IsActive {
			out = append(out, z)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeCartService keeps a single cart in memory
type fakeCartService struct {
	sessions []string
	items    map[int64]*models.CartItem
	addErr   error
	failAll  error
}

func newFakeCartService() *fakeCartService {
	return &fakeCartService{items: map[int64]*models.CartItem{}}
}

func (f *fakeCartService) CartForSession(_ context.Context, sessionKey string) (*models.Cart, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	f.sessions = append(f.sessions, sessionKey)
	return &models.Cart{ID: 7, SessionKey: sessionKey, IsActive: true}, nil
}

func (f *fakeCartService) AddToCart(_ context.Context, cartID, variantID int64, rawQty string) error {
	if f.addErr != nil {
		return f.addErr
	}
	id := int64(len(f.items) + 1)
	f.items[id] = &models.CartItem{ID: id, CartID: cartID, VariantID: variantID, UnitPrice: decimal.NewFromInt(5), Quantity: 1, Stock: 10}
	return nil
}

func (f *fakeCartService) UpdateItem(_ context.Context, cartID, itemID int64, req models.CartItemUpdateRequest) (*models.CartItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, service.ErrItemNotFound
	}
	qty := item.Quantity
	if req.Delta != nil {
		qty += *req.Delta
	} else if req.Qty != nil {
		qty = *req.Qty
	}
	if qty <= 0 {
		delete(f.items, itemID)
		return nil, nil
	}
	if qty > item.Stock {
		return nil, &service.StockError{Available: item.Stock}
	}
	item.Quantity = qty
	copied := *item
	return &copied, nil
}

func (f *fakeCartService) RemoveItem(_ context.Context, cartID, itemID int64) error {
	delete(f.items, itemID)
	return nil
}

func (f *fakeCartService) Clear(_ context.Context, cartID int64) error {
	f.items = map[int64]*models.CartItem{}
	return nil
}

func (f *fakeCartService) Totals(_ context.Context, cartID int64) (models.CartTotals, error) {
	totals := models.CartTotals{Subtotal: decimal.Zero, CanCheckout: true, ItemsLeft: len(f.items)}
	for _, item := range f.items {
		totals.Count += item.Quantity
		totals.Subtotal = totals.Subtotal.Add(item.Total())
	}
	return totals, nil
}

func (f *fakeCartService) Summary(ctx context.Context, cartID int64) (*models.CartSummary, error) {
	totals, _ := f.Totals(ctx, cartID)
	html := ""
	if totals.Count > 0 {
		html = fmt.Sprintf("<div class=\"mc2-items\">%d</div>", totals.Count)
	}
	return &models.CartSummary{OK: true, CartCount: totals.Count, MiniCartHTML: html}, nil
}
