package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/utils"
)

// LowStockThreshold is the first stock level considered fully available.
// Variants with 0 < stock < LowStockThreshold are LOW_STOCK.
const LowStockThreshold = 5

// defaultSwatchHex is used when a variant has a color name but no hex code
const defaultSwatchHex = "#ccc"

// ClassifyStock returns the stock tier for a stock level
func ClassifyStock(stock int) models.StockTier {
	switch {
	case stock <= 0:
		return models.StockTierOutOfStock
	case stock < LowStockThreshold:
		return models.StockTierLowStock
	default:
		return models.StockTierAvailable
	}
}

// StockMessage returns the customer-facing stock hint for a tier.
// The low-stock message always carries the exact remaining count.
func StockMessage(tier models.StockTier, stock int) string {
	switch tier {
	case models.StockTierOutOfStock:
		return "Agotado"
	case models.StockTierLowStock:
		return fmt.Sprintf("¡Solo quedan %d unidades!", stock)
	default:
		return fmt.Sprintf("Disponible (%d en stock)", stock)
	}
}

// ClampQuantity normalizes a requested quantity against a stock level.
// Values below 1 become 1. When stock > 0 the result never exceeds stock;
// with no stock the quantity is left alone since the action is disabled anyway.
func ClampQuantity(requested, stock int) int {
	qty := requested
	if qty < 1 {
		qty = 1
	}
	if stock > 0 && qty > stock {
		qty = stock
	}
	return qty
}

// Resolve derives the display state for a variant and requested quantity
func Resolve(variant models.Variant, requestedQuantity int) models.SelectionState {
	if requestedQuantity < 1 {
		requestedQuantity = 1
	}

	stock := variant.Stock
	qty := ClampQuantity(requestedQuantity, stock)

	unitPrice := variant.Price
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}
	lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(qty)))

	tier := ClassifyStock(stock)
	available := tier != models.StockTierOutOfStock

	state := models.SelectionState{
		Variant:           variant,
		RequestedQuantity: requestedQuantity,
		EffectiveQuantity: qty,
		UnitPrice:         unitPrice,
		LineTotal:         lineTotal,
		UnitPriceText:     utils.FormatAmount(unitPrice),
		LineTotalText:     utils.FormatAmount(lineTotal),
		Tier:              tier,
		StockMessage:      StockMessage(tier, stock),
		AddToCartEnabled:  available,
		QuantityEnabled:   available,
		DecrementEnabled:  available && qty > 1,
		IncrementEnabled:  available && !(stock > 0 && qty >= stock),
	}

	if variant.HasColor() {
		hex := variant.ColorHex
		if hex == "" {
			hex = defaultSwatchHex
		}
		state.Color = &models.ColorIndicator{Name: variant.ColorName, Hex: hex}
	}

	return state
}

// ResolveRaw is Resolve for a quantity as typed by the customer.
// Non-numeric input is treated as 1.
func ResolveRaw(variant models.Variant, rawQuantity string) models.SelectionState {
	return Resolve(variant, utils.ParseInt(rawQuantity, 1))
}

// Increment returns the state after pressing the + control.
// The quantity only grows while stock is unknown (0) or not yet reached.
func Increment(state models.SelectionState) models.SelectionState {
	qty := state.EffectiveQuantity
	stock := state.Variant.Stock
	if (stock == 0 || qty < stock) && qty < math.MaxInt {
		qty++
	}
	return Resolve(state.Variant, qty)
}

// Decrement returns the state after pressing the - control
func Decrement(state models.SelectionState) models.SelectionState {
	qty := state.EffectiveQuantity
	if qty > 1 {
		qty--
	}
	return Resolve(state.Variant, qty)
}

// SelectVariant re-resolves the current quantity against a newly selected variant
func SelectVariant(state models.SelectionState, variant models.Variant) models.SelectionState {
	return Resolve(variant, state.EffectiveQuantity)
}
