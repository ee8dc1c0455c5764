package repository

import (
	"context"
	"errors"

	"storefront/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// VariantRepositoryInterface defines the contract for variant repository operations
type VariantRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Variant, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Variant, error)
}

// ShippingZoneRepositoryInterface defines the contract for shipping zone repository operations
type ShippingZoneRepositoryInterface interface {
	GetActiveByID(ctx context.Context, id int64) (*models.ShippingZone, error)
	ListActive(ctx context.Context) ([]models.ShippingZone, error)
}

// QuantityFunc decides the new quantity of a cart line from its current quantity
// (0 when the line does not exist yet) and the stock of its variant.
// It runs while both rows are locked; returning an error aborts the change.
type QuantityFunc func(current, stock int) (int, error)

// CartRepositoryInterface defines the contract for cart repository operations
type CartRepositoryInterface interface {
	GetOrCreateActive(ctx context.Context, sessionKey string) (*models.Cart, error)
	ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error)
	GetItem(ctx context.Context, cartID, itemID int64) (*models.CartItem, error)
	// AdjustVariantQuantity creates or updates the line of a variant, returning its new quantity
	AdjustVariantQuantity(ctx context.Context, cartID, variantID int64, decide QuantityFunc) (int, error)
	// AdjustItemQuantity updates an existing line; a new quantity of zero or less deletes it
	AdjustItemQuantity(ctx context.Context, cartID, itemID int64, decide QuantityFunc) (int, error)
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	ClearItems(ctx context.Context, cartID int64) error
}
