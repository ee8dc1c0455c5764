package service

import (
	"log"
	"strconv"
	"sync"

	"storefront/models"
	"storefront/pricing"
)

// TextHandle is a display element whose text content can be replaced
type TextHandle interface {
	SetText(text string)
}

// ControlHandle is a button or input that can be enabled or disabled
type ControlHandle interface {
	SetDisabled(disabled bool)
}

// QuantityHandle is the quantity input
type QuantityHandle interface {
	ControlHandle
	SetValue(value string)
}

// ImageHandle is the main product image
type ImageHandle interface {
	Source() string
	SetSource(src string)
}

// ColorHandle is the color indicator (name plus swatch)
type ColorHandle interface {
	Show(name, hex string)
	Hide()
}

// ProductDetailView holds the display handles of a product detail page.
// It is built once per page load; nil handles are anchors missing from the page.
type ProductDetailView struct {
	Price     TextHandle
	LineTotal TextHandle
	StockHint TextHandle
	Quantity  QuantityHandle
	AddToCart ControlHandle
	Increment ControlHandle
	Decrement ControlHandle
	MainImage ImageHandle
	Color     ColorHandle
}

// ProductDetailRenderer applies a SelectionState to the view
type ProductDetailRenderer struct {
	view ProductDetailView
}

// NewProductDetailRenderer creates a renderer bound to a view
func NewProductDetailRenderer(view ProductDetailView) *ProductDetailRenderer {
	return &ProductDetailRenderer{view: view}
}

// variantChanged reports whether image and color need to be refreshed
func variantChanged(prev *models.SelectionState, next models.SelectionState) bool {
	if prev == nil {
		return true
	}
	a, b := prev.Variant, next.Variant
	return a.ID != b.ID || a.ImageURL != b.ImageURL || a.ColorName != b.ColorName || a.ColorHex != b.ColorHex
}

// Render updates the view from next. prev is the previously rendered state, nil on first render.
func (r *ProductDetailRenderer) Render(prev *models.SelectionState, next models.SelectionState) {
	v := r.view

	if v.Price != nil {
		v.Price.SetText(next.UnitPriceText)
	}
	if v.LineTotal != nil {
		v.LineTotal.SetText(next.LineTotalText)
	}
	if v.StockHint != nil {
		v.StockHint.SetText(next.StockMessage)
	}
	if v.Quantity != nil {
		v.Quantity.SetValue(strconv.Itoa(next.EffectiveQuantity))
		v.Quantity.SetDisabled(!next.QuantityEnabled)
	}
	if v.AddToCart != nil {
		v.AddToCart.SetDisabled(!next.AddToCartEnabled)
	}
	if v.Increment != nil {
		v.Increment.SetDisabled(!next.IncrementEnabled)
	}
	if v.Decrement != nil {
		v.Decrement.SetDisabled(!next.DecrementEnabled)
	}

	if !variantChanged(prev, next) {
		return
	}

	if img := next.Variant.ImageURL; img != "" && v.MainImage != nil && v.MainImage.Source() != img {
		v.MainImage.SetSource(img)
	}
	if v.Color != nil {
		if next.Color != nil {
			v.Color.Show(next.Color.Name, next.Color.Hex)
		} else {
			v.Color.Hide()
		}
	}
}

// ProductDetailSession tracks the selection of one product page and re-renders on every event
type ProductDetailSession struct {
	mu       sync.Mutex
	renderer *ProductDetailRenderer
	state    *models.SelectionState
}

// NewProductDetailSession creates a session and renders the initial variant with quantity 1
func NewProductDetailSession(view ProductDetailView, initial models.Variant) *ProductDetailSession {
	s := &ProductDetailSession{renderer: NewProductDetailRenderer(view)}
	s.commit(pricing.Resolve(initial, 1))
	return s
}

func (s *ProductDetailSession) commit(next models.SelectionState) models.SelectionState {
	s.renderer.Render(s.state, next)
	s.state = &next
	return next
}

// State returns the current selection state
func (s *ProductDetailSession) State() models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state
}

// SelectVariant handles a variant change
func (s *ProductDetailSession) SelectVariant(v models.Variant) models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.Printf("🎨 ProductDetail: variant changed to %d", v.ID)
	return s.commit(pricing.SelectVariant(*s.state, v))
}

// SetQuantity handles typed quantity input
func (s *ProductDetailSession) SetQuantity(raw string) models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(pricing.ResolveRaw(s.state.Variant, raw))
}

// Increment handles the + control
func (s *ProductDetailSession) Increment() models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(pricing.Increment(*s.state))
}

// Decrement handles the - control
func (s *ProductDetailSession) Decrement() models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(pricing.Decrement(*s.state))
}
