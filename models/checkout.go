package models

import "github.com/shopspring/decimal"

// DeliveryMode is the customer's delivery choice at checkout
type DeliveryMode string

const (
	DeliveryModePickup DeliveryMode = "pickup"
	DeliveryModeHome   DeliveryMode = "home"
)

// PaymentMethod values as submitted by the checkout form
const (
	PaymentMethodTransfer       = "transferencia"
	PaymentMethodCashOnDelivery = "contraentrega"
)

// PaymentPanel identifies which payment instructions block is visible
type PaymentPanel string

const (
	PaymentPanelTransfer       PaymentPanel = "transfer"
	PaymentPanelCashOnDelivery PaymentPanel = "cash_on_delivery"
	PaymentPanelEmpty          PaymentPanel = "empty"
)

// ShippingZone represents a delivery zone with a flat shipping cost
type ShippingZone struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Cost     decimal.Decimal `json:"cost"`
	IsActive bool            `json:"isActive"`
}

// CheckoutInput holds everything the checkout summary depends on
type CheckoutInput struct {
	Subtotal      decimal.Decimal
	DeliveryMode  DeliveryMode
	Zone          *ShippingZone
	PaymentMethod string
}

// CheckoutSummary is the recomputed checkout sidebar
type CheckoutSummary struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	Shipping         decimal.Decimal `json:"shipping"`
	Total            decimal.Decimal `json:"total"`
	SubtotalText     string          `json:"subtotalText"`
	ShippingText     string          `json:"shippingText"`
	TotalText        string          `json:"totalText"`
	DeliveryBadge    string          `json:"deliveryBadge"`
	ShowZoneSelector bool            `json:"showZoneSelector"`
	ShowAddress      bool            `json:"showAddress"`
	ShowStoreAddress bool            `json:"showStoreAddress"`
	PaymentPanel     PaymentPanel    `json:"paymentPanel"`
	TransferLink     string          `json:"transferLink,omitempty"`
}
