package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/templates"
	"storefront/utils"
)

// MiniCartMaxItems is the number of cart lines shown in the mini-cart fragment
const MiniCartMaxItems = 8

// MiniCartRenderer renders the mini-cart HTML fragment
type MiniCartRenderer struct {
	tmpl *template.Template
}

// NewMiniCartRenderer parses the mini-cart template
func NewMiniCartRenderer() (*MiniCartRenderer, error) {
	tmpl, err := templates.Parse("mini_cart.html", template.FuncMap{
		"amount": utils.FormatAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse mini cart template: %w", err)
	}
	return &MiniCartRenderer{tmpl: tmpl}, nil
}

// Render renders up to MiniCartMaxItems lines plus the cart subtotal.
// An empty cart renders an empty string so the client shows its own empty placeholder.
func (r *MiniCartRenderer) Render(items []models.CartItem, subtotal decimal.Decimal) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	shown := items
	more := 0
	if len(shown) > MiniCartMaxItems {
		more = len(shown) - MiniCartMaxItems
		shown = shown[:MiniCartMaxItems]
	}

	data := struct {
		Items    []models.CartItem
		More     int
		Subtotal decimal.Decimal
	}{
		Items:    shown,
		More:     more,
		Subtotal: subtotal,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute mini cart template: %w", err)
	}
	return buf.String(), nil
}
