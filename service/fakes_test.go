package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/repository"
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
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCartRepo struct {
	mu       sync.Mutex
	variants *fakeVariantRepo
	items    map[int64]*models.CartItem
	nextID   int64
}

func newFakeCartRepo(variants *fakeVariantRepo) *fakeCartRepo {
	return &fakeCartRepo{variants: variants, items: map[int64]*models.CartItem{}, nextID: 1}
}

func (f *fakeCartRepo) hydrate(item models.CartItem) models.CartItem {
	v := f.variants.variants[item.VariantID]
	item.ProductName = v.ProductName
	item.ColorName = v.ColorName
	item.ImageURL = v.ImageURL
	item.UnitPrice = v.Price
	item.Stock = v.Stock
	return item
}

// itemByVariant returns the line holding a variant, or nil
func (f *fakeCartRepo) itemByVariant(cartID, variantID int64) *models.CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.CartID == cartID && item.VariantID == variantID {
			hydrated := f.hydrate(*item)
			return &hydrated
		}
	}
	return nil
}

func (f *fakeCartRepo) GetOrCreateActive(_ context.Context, sessionKey string) (*models.Cart, error) {
	return &models.Cart{ID: 1, SessionKey: sessionKey, IsActive: true}, nil
}

func (f *fakeCartRepo) ListItems(_ context.Context, cartID int64) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CartItem
	for _, item := range f.items {
		if item.CartID == cartID {
			out = append(out, f.hydrate(*item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCartRepo) GetItem(_ context.Context, cartID, itemID int64) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok || item.CartID != cartID {
		return nil, fmt.Errorf("cart item %d: %w", itemID, repository.ErrNotFound)
	}
	hydrated := f.hydrate(*item)
	return &hydrated, nil
}

func (f *fakeCartRepo) AdjustVariantQuantity(_ context.Context, cartID, variantID int64, decide repository.QuantityFunc) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.variants.variants[variantID]
	if !ok {
		return 0, fmt.Errorf("variant %d: %w", variantID, repository.ErrNotFound)
	}

	var line *models.CartItem
	for _, item := range f.items {
		if item.CartID == cartID && item.VariantID == variantID {
			line = item
		}
	}
	current := 0
	if line != nil {
		current = line.Quantity
	}

	quantity, err := decide(current, v.Stock)
	if err != nil {
		return 0, err
	}
	if line == nil {
		line = &models.CartItem{ID: f.nextID, CartID: cartID, VariantID: variantID}
		f.items[line.ID] = line
		f.nextID++
	}
	line.Quantity = quantity
	return quantity, nil
}

func (f *fakeCartRepo) AdjustItemQuantity(_ context.Context, cartID, itemID int64, decide repository.QuantityFunc) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok || item.CartID != cartID {
		return 0, fmt.Errorf("cart item %d: %w", itemID, repository.ErrNotFound)
	}

	quantity, err := decide(item.Quantity, f.variants.variants[item.VariantID].Stock)
	if err != nil {
		return 0, err
	}
	if quantity <= 0 {
		delete(f.items, itemID)
	} else {
		item.Quantity = quantity
	}
	return quantity, nil
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, cartID, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[itemID]; ok && item.CartID == cartID {
		delete(f.items, itemID)
	}
	return nil
}

func (f *fakeCartRepo) ClearItems(_ context.Context, cartID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, item := range f.items {
		if item.CartID == cartID {
			delete(f.items, id)
		}
	}
	return nil
}

func testVariants() *fakeVariantRepo {
	return &fakeVariantRepo{variants: map[int64]models.Variant{
		10: {ID: 10, ProductID: 1, ProductName: "Camiseta", SKU: "CAM-R", Price: decimal.RequireFromString("19.99"), Stock: 3, ColorName: "Rojo", ColorHex: "#FF0000", IsActive: true},
		11: {ID: 11, ProductID: 1, ProductName: "Camiseta", SKU: "CAM-A", Price: decimal.RequireFromString("21.50"), Stock: 0, IsActive: true},
		12: {ID: 12, ProductID: 1, ProductName: "Camiseta", SKU: "CAM-N", Price: decimal.RequireFromString("5.00"), Stock: 40, IsActive: true},
	}}
}
