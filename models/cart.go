package models

import "github.com/shopspring/decimal"

// Cart represents an active shopping cart bound to a session key
type Cart struct {
	ID         int64  `json:"id"`
	SessionKey string `json:"sessionKey"`
	IsActive   bool   `json:"isActive"`
	CreatedAt  string `json:"createdAt"`
}

// CartItem represents a variant line inside a cart
type CartItem struct {
	ID          int64           `json:"id"`
	CartID      int64           `json:"cartId"`
	VariantID   int64           `json:"variantId"`
	ProductName string          `json:"productName"`
	ColorName   string          `json:"colorName,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Stock       int             `json:"stock"`
}

// Total returns unit price times quantity
func (i CartItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSummary is the wire shape of GET /cart/summary
// Example response:
// {
//   "ok": true,
//   "cart_count": 3,
//   "mini_cart_html": "<div class=\"mc2-item\">...</div>"
// }
type CartSummary struct {
	OK           bool   `json:"ok"`
	CartCount    int    `json:"cart_count"`
	MiniCartHTML string `json:"mini_cart_html"`
	Error        string `json:"error,omitempty"`
}

// CartTotals aggregates the state of a cart after a change
type CartTotals struct {
	Count       int             `json:"count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	CanCheckout bool            `json:"canCheckout"`
	ItemsLeft   int             `json:"itemsLeft"`
}

// CartItemUpdateRequest is the form accepted by POST /cart/items/{id}.
// Delta takes precedence over Qty when both are present.
type CartItemUpdateRequest struct {
	Qty   *int `json:"qty,omitempty"`
	Delta *int `json:"delta,omitempty"`
}

// CartItemUpdateResponse is returned by POST /cart/items/{id}
type CartItemUpdateResponse struct {
	OK           bool   `json:"ok"`
	Deleted      bool   `json:"deleted"`
	ItemQty      int    `json:"item_qty,omitempty"`
	ItemTotal    string `json:"item_total,omitempty"`
	CartSubtotal string `json:"cart_subtotal"`
	CartCount    int    `json:"cart_count"`
	CanCheckout  bool   `json:"can_checkout"`
	ItemsLeft    int    `json:"items_left"`
	Stock        *int   `json:"stock,omitempty"`
	Error        string `json:"error,omitempty"`
}
