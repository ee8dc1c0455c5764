package models

import "github.com/shopspring/decimal"

// StockTier is the stock-status classification of a variant
type StockTier string

const (
	StockTierOutOfStock StockTier = "OUT_OF_STOCK"
	StockTierLowStock   StockTier = "LOW_STOCK"
	StockTierAvailable  StockTier = "AVAILABLE"
)

// ColorIndicator is the color name and swatch shown next to the variant selector
type ColorIndicator struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// SelectionState is the derived display state for a selected variant and quantity.
// It is recomputed on every input event and never persisted.
type SelectionState struct {
	Variant           Variant         `json:"variant"`
	RequestedQuantity int             `json:"requestedQuantity"`
	EffectiveQuantity int             `json:"effectiveQuantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	LineTotal         decimal.Decimal `json:"lineTotal"`
	UnitPriceText     string          `json:"unitPriceText"`
	LineTotalText     string          `json:"lineTotalText"`
	Tier              StockTier       `json:"tier"`
	StockMessage      string          `json:"stockMessage"`
	AddToCartEnabled  bool            `json:"addToCartEnabled"`
	QuantityEnabled   bool            `json:"quantityEnabled"`
	DecrementEnabled  bool            `json:"decrementEnabled"`
	IncrementEnabled  bool            `json:"incrementEnabled"`
	Color             *ColorIndicator `json:"color,omitempty"`
}
