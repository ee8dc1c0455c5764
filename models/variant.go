package models

import "github.com/shopspring/decimal"

// Variant represents a purchasable configuration of a product (color/size combination)
type Variant struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	DriveFileID string          `json:"driveFileId,omitempty"`
	ColorName   string          `json:"colorName,omitempty"`
	ColorHex    string          `json:"colorHex,omitempty"`
	IsActive    bool            `json:"isActive"`
}

// HasColor reports whether a color indicator should be shown for the variant
func (v Variant) HasColor() bool {
	return v.ColorName != ""
}
