package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"storefront/models"
	"storefront/repository"
	"storefront/service"
	"storefront/utils"
)

// CartSessionCookie is the cookie that binds a browser to its cart
const CartSessionCookie = "cart_session"

const cartSessionMaxAge = 30 * 24 * time.Hour

// CartService is the part of service.CartService the controller needs
type CartService interface {
	CartForSession(ctx context.Context, sessionKey string) (*models.Cart, error)
	AddToCart(ctx context.Context, cartID, variantID int64, rawQty string) error
	UpdateItem(ctx context.Context, cartID, itemID int64, req models.CartItemUpdateRequest) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID int64) error
	Clear(ctx context.Context, cartID int64) error
	Totals(ctx context.Context, cartID int64) (models.CartTotals, error)
	Summary(ctx context.Context, cartID int64) (*models.CartSummary, error)
}

// Ensure service.CartService satisfies CartService
var _ CartService = (*service.CartService)(nil)

// CartController handles HTTP requests for the cart and mini-cart
type CartController struct {
	carts CartService
}

// NewCartController creates a new CartController
func NewCartController(carts CartService) *CartController {
	return &CartController{
		carts: carts,
	}
}

// sessionKey returns the cart session key, issuing a new cookie when missing.
// Keys are always UUIDs; any other cookie value is replaced.
func sessionKey(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CartSessionCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}
	key := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CartSessionCookie,
		Value:    key,
		Path:     "/",
		MaxAge:   int(cartSessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return key
}

func (c *CartController) currentCart(w http.ResponseWriter, r *http.Request) (*models.Cart, bool) {
	cart, err := c.carts.CartForSession(r.Context(), sessionKey(w, r))
	if err != nil {
		log.Printf("❌ Error loading cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.CartSummary{OK: false, Error: "No se pudo cargar el carrito"})
		return nil, false
	}
	return cart, true
}

// cartErrorStatus maps cart errors to HTTP status codes
func cartErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrItemNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Summary handles GET /cart/summary
// Returns {ok, cart_count, mini_cart_html} for the mini-cart
func (c *CartController) Summary(w http.ResponseWriter, r *http.Request) {
	cart, ok := c.currentCart(w, r)
	if !ok {
		return
	}
	c.writeSummary(w, r, cart.ID)
}

// writeSummary writes the mini-cart payload of a cart already resolved for this request
func (c *CartController) writeSummary(w http.ResponseWriter, r *http.Request, cartID int64) {
	summary, err := c.carts.Summary(r.Context(), cartID)
	if err != nil {
		log.Printf("❌ Summary: Error building cart summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.CartSummary{OK: false, Error: "No se pudo cargar el carrito"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// AddItem handles POST /cart/add/{variantID} with form field qty
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	variantID, ok := pathID(r, "variantID")
	if !ok {
		http.Error(w, "invalid variant id", http.StatusBadRequest)
		return
	}
	cart, ok := c.currentCart(w, r)
	if !ok {
		return
	}

	rawQty, _ := formValue(r, "qty")
	if err := c.carts.AddToCart(r.Context(), cart.ID, variantID, rawQty); err != nil {
		status := cartErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("❌ AddItem: Error adding variant %d: %v", variantID, err)
		}
		writeJSON(w, status, models.CartSummary{OK: false, Error: service.UserMessage(err)})
		return
	}

	totals, err := c.carts.Totals(r.Context(), cart.ID)
	if err != nil {
		log.Printf("❌ AddItem: Error computing totals: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.CartSummary{OK: false, Error: service.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, models.CartSummary{OK: true, CartCount: totals.Count})
}

// parseItemUpdate reads qty or delta from the form; delta wins when both are present
func parseItemUpdate(r *http.Request) (models.CartItemUpdateRequest, error) {
	var req models.CartItemUpdateRequest
	if raw, ok := formValue(r, "delta"); ok && raw != "" {
		delta, err := strconv.Atoi(raw)
		if err != nil {
			return req, service.ErrInvalidQuantity
		}
		req.Delta = &delta
		return req, nil
	}
	raw, ok := formValue(r, "qty")
	if !ok {
		return req, service.ErrInvalidQuantity
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return req, service.ErrInvalidQuantity
	}
	req.Qty = &qty
	return req, nil
}

// UpdateItem handles POST /cart/items/{id} with form field qty (final quantity) or delta (+1/-1)
// Example response:
// {
//   "ok": true,
//   "deleted": false,
//   "item_qty": 2,
//   "item_total": "39.98",
//   "cart_subtotal": "39.98",
//   "cart_count": 2,
//   "can_checkout": true,
//   "items_left": 1,
//   "stock": 3
// }
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	cart, ok := c.currentCart(w, r)
	if !ok {
		return
	}

	req, err := parseItemUpdate(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.CartItemUpdateResponse{OK: false, Error: service.UserMessage(err)})
		return
	}

	item, err := c.carts.UpdateItem(r.Context(), cart.ID, itemID, req)
	if err != nil {
		resp := models.CartItemUpdateResponse{OK: false, Error: service.UserMessage(err)}
		var stockErr *service.StockError
		if errors.As(err, &stockErr) {
			resp.Stock = &stockErr.Available
		}
		status := cartErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("❌ UpdateItem: Error updating item %d: %v", itemID, err)
		}
		writeJSON(w, status, resp)
		return
	}

	totals, err := c.carts.Totals(r.Context(), cart.ID)
	if err != nil {
		log.Printf("❌ UpdateItem: Error computing totals: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.CartItemUpdateResponse{OK: false, Error: service.UserMessage(err)})
		return
	}

	resp := models.CartItemUpdateResponse{
		OK:           true,
		Deleted:      item == nil,
		CartSubtotal: utils.FormatAmount(totals.Subtotal),
		CartCount:    totals.Count,
		CanCheckout:  totals.CanCheckout,
		ItemsLeft:    totals.ItemsLeft,
	}
	if item != nil {
		resp.ItemQty = item.Quantity
		resp.ItemTotal = utils.FormatAmount(item.Total())
		resp.Stock = &item.Stock
	}
	writeJSON(w, http.StatusOK, resp)
}

// RemoveItem handles POST /cart/items/{id}/remove
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	cart, ok := c.currentCart(w, r)
	if !ok {
		return
	}
	if err := c.carts.RemoveItem(r.Context(), cart.ID, itemID); err != nil {
		log.Printf("❌ RemoveItem: Error removing item %d: %v", itemID, err)
		writeJSON(w, http.StatusInternalServerError, models.CartSummary{OK: false, Error: service.UserMessage(err)})
		return
	}
	c.writeSummary(w, r, cart.ID)
}

// Clear handles POST /cart/clear
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	cart, ok := c.currentCart(w, r)
	if !ok {
		return
	}
	if err := c.carts.Clear(r.Context(), cart.ID); err != nil {
		log.Printf("❌ Clear: Error clearing cart %d: %v", cart.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.CartSummary{OK: false, Error: service.UserMessage(err)})
		return
	}
	c.writeSummary(w, r, cart.ID)
}
