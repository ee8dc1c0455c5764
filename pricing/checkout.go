package pricing

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/utils"
)

// DefaultTransferPhone is the messaging number used for bank transfer receipts
const DefaultTransferPhone = "593999519375"

// CheckoutCalculator recomputes the checkout sidebar from the delivery and payment choices
type CheckoutCalculator struct {
	transferPhone string
}

// NewCheckoutCalculator creates a CheckoutCalculator.
// An empty phone falls back to DefaultTransferPhone.
func NewCheckoutCalculator(transferPhone string) *CheckoutCalculator {
	phone := strings.TrimSpace(transferPhone)
	if phone == "" {
		phone = DefaultTransferPhone
	}
	return &CheckoutCalculator{transferPhone: phone}
}

// ShippingCost returns the shipping cost that applies to the input.
// Only home delivery with a selected zone is charged.
func ShippingCost(input models.CheckoutInput) decimal.Decimal {
	if input.DeliveryMode != models.DeliveryModeHome || input.Zone == nil {
		return decimal.Zero
	}
	if input.Zone.Cost.IsNegative() {
		return decimal.Zero
	}
	return input.Zone.Cost
}

// Summarize computes totals, delivery visibility and payment panel for the checkout page
func (c *CheckoutCalculator) Summarize(input models.CheckoutInput) models.CheckoutSummary {
	subtotal := input.Subtotal
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}
	shipping := ShippingCost(input)
	total := subtotal.Add(shipping)

	isPickup := input.DeliveryMode == models.DeliveryModePickup
	isHome := input.DeliveryMode == models.DeliveryModeHome

	summary := models.CheckoutSummary{
		Subtotal:         subtotal,
		Shipping:         shipping,
		Total:            total,
		SubtotalText:     utils.FormatAmount(subtotal),
		ShippingText:     utils.FormatAmount(shipping),
		TotalText:        utils.FormatAmount(total),
		DeliveryBadge:    "Envío",
		ShowZoneSelector: isHome,
		ShowAddress:      isHome,
		ShowStoreAddress: isPickup,
	}
	if isPickup {
		summary.DeliveryBadge = "Retiro"
	}

	switch strings.TrimSpace(input.PaymentMethod) {
	case models.PaymentMethodTransfer:
		summary.PaymentPanel = models.PaymentPanelTransfer
		summary.TransferLink = c.TransferLink(summary.TotalText)
	case models.PaymentMethodCashOnDelivery:
		summary.PaymentPanel = models.PaymentPanelCashOnDelivery
	default:
		summary.PaymentPanel = models.PaymentPanelEmpty
	}

	return summary
}

// TransferLink builds the prefilled messaging link sent with a bank transfer receipt
func (c *CheckoutCalculator) TransferLink(totalText string) string {
	msg := fmt.Sprintf("Hola, realicé un pedido por $%s y adjunto el comprobante de transferencia.", totalText)
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.transferPhone, encodeURIComponent(msg))
}

// uriComponentUnescapes restores what QueryEscape escapes but URI components keep literal
var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s the way browsers escape a URI component:
// spaces as %20 and !'()* left as is
func encodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}
