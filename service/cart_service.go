package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/repository"
	"storefront/utils"
)

var (
	// ErrOutOfStock is returned when adding a variant with no stock
	ErrOutOfStock = errors.New("variant is out of stock")
	// ErrInsufficientStock is matched by StockError
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrItemNotFound is returned when a cart line does not belong to the cart
	ErrItemNotFound = errors.New("cart item not found")
	// ErrInvalidQuantity is returned when neither a quantity nor a delta could be read
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// StockError reports a quantity above the available stock
type StockError struct {
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}

// Is makes errors.Is(err, ErrInsufficientStock) match
func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// UserMessage returns the storefront message shown for a cart error
func UserMessage(err error) string {
	var stockErr *StockError
	switch {
	case errors.As(err, &stockErr):
		return fmt.Sprintf("Stock insuficiente. Disponible: %d.", stockErr.Available)
	case errors.Is(err, ErrOutOfStock):
		return "Esta variante no tiene stock."
	case errors.Is(err, ErrItemNotFound):
		return "Ítem no encontrado."
	case errors.Is(err, ErrInvalidQuantity):
		return "Cantidad inválida."
	case errors.Is(err, repository.ErrNotFound):
		return "Producto no encontrado."
	default:
		return "No se pudo actualizar el carrito."
	}
}

// CartService applies the cart rules on top of the cart repository
type CartService struct {
	carts    repository.CartRepositoryInterface
	renderer *MiniCartRenderer
}

// NewCartService creates a new CartService
func NewCartService(carts repository.CartRepositoryInterface, renderer *MiniCartRenderer) *CartService {
	return &CartService{
		carts:    carts,
		renderer: renderer,
	}
}

// CartForSession returns the active cart of a session
func (s *CartService) CartForSession(ctx context.Context, sessionKey string) (*models.Cart, error) {
	return s.carts.GetOrCreateActive(ctx, sessionKey)
}

// AddToCart adds rawQty units of a variant to the cart.
// Malformed or non-positive quantities count as 1; the resulting line may not exceed stock.
// The stock check and the write happen under one lock, so concurrent adds cannot overshoot.
func (s *CartService) AddToCart(ctx context.Context, cartID, variantID int64, rawQty string) error {
	qty := utils.ParseInt(rawQty, 1)
	if qty < 1 {
		qty = 1
	}

	newQty, err := s.carts.AdjustVariantQuantity(ctx, cartID, variantID, func(current, stock int) (int, error) {
		if stock <= 0 {
			return 0, ErrOutOfStock
		}
		if qty > stock-current {
			return 0, &StockError{Available: stock}
		}
		return current + qty, nil
	})
	if err != nil {
		return err
	}

	log.Printf("✓ AddToCart: cart_id=%d, variant_id=%d, quantity=%d", cartID, variantID, newQty)
	return nil
}

// UpdateItem sets the final quantity of a cart line from an absolute qty or a delta.
// A final quantity of zero or less removes the line and returns a nil item.
func (s *CartService) UpdateItem(ctx context.Context, cartID, itemID int64, req models.CartItemUpdateRequest) (*models.CartItem, error) {
	if req.Delta == nil && req.Qty == nil {
		return nil, ErrInvalidQuantity
	}

	qty, err := s.carts.AdjustItemQuantity(ctx, cartID, itemID, func(current, stock int) (int, error) {
		if req.Delta != nil {
			delta := *req.Delta
			if delta > stock-current {
				return 0, &StockError{Available: stock}
			}
			return current + delta, nil
		}
		if *req.Qty > stock {
			return 0, &StockError{Available: stock}
		}
		return *req.Qty, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if qty <= 0 {
		log.Printf("🗑️  UpdateItem: removed item %d from cart %d", itemID, cartID)
		return nil, nil
	}

	item, err := s.carts.GetItem(ctx, cartID, itemID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem removes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	return s.carts.DeleteItem(ctx, cartID, itemID)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, cartID int64) error {
	return s.carts.ClearItems(ctx, cartID)
}

// Totals computes count, subtotal and checkout eligibility of a cart
func (s *CartService) Totals(ctx context.Context, cartID int64) (models.CartTotals, error) {
	items, err := s.carts.ListItems(ctx, cartID)
	if err != nil {
		return models.CartTotals{}, err
	}
	return computeTotals(items), nil
}

func computeTotals(items []models.CartItem) models.CartTotals {
	totals := models.CartTotals{
		Subtotal:    decimal.Zero,
		CanCheckout: true,
		ItemsLeft:   len(items),
	}
	for _, item := range items {
		totals.Count += item.Quantity
		totals.Subtotal = totals.Subtotal.Add(item.Total())
		if item.Quantity > item.Stock {
			totals.CanCheckout = false
		}
	}
	return totals
}

// Summary builds the mini-cart payload served to the cart summary endpoint
func (s *CartService) Summary(ctx context.Context, cartID int64) (*models.CartSummary, error) {
	items, err := s.carts.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	totals := computeTotals(items)

	html, err := s.renderer.Render(items, totals.Subtotal)
	if err != nil {
		return nil, err
	}

	return &models.CartSummary{
		OK:           true,
		CartCount:    totals.Count,
		MiniCartHTML: html,
	}, nil
}
