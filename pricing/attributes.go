package pricing

import (
	"strconv"
	"strings"

	"storefront/models"
	"storefront/utils"
)

// Variant option attribute names as rendered on the product page
const (
	AttrPrice = "price"
	AttrStock = "stock"
	AttrImage = "image"
	AttrColor = "color"
	AttrHex   = "hex"
)

// VariantFromAttributes builds a Variant from the data attributes of a variant option.
// Malformed price and stock values become zero.
func VariantFromAttributes(attrs map[string]string) models.Variant {
	return models.Variant{
		Price:     utils.ParseDecimal(attrs[AttrPrice]),
		Stock:     utils.ParseStock(attrs[AttrStock]),
		ImageURL:  strings.TrimSpace(attrs[AttrImage]),
		ColorName: strings.TrimSpace(attrs[AttrColor]),
		ColorHex:  strings.TrimSpace(attrs[AttrHex]),
		IsActive:  true,
	}
}

// Attributes is the inverse of VariantFromAttributes, used when rendering variant options
func Attributes(v models.Variant) map[string]string {
	attrs := map[string]string{
		AttrPrice: utils.FormatAmount(v.Price),
		AttrStock: strconv.Itoa(v.Stock),
	}
	if v.ImageURL != "" {
		attrs[AttrImage] = v.ImageURL
	}
	if v.ColorName != "" {
		attrs[AttrColor] = v.ColorName
		if v.ColorHex != "" {
			attrs[AttrHex] = v.ColorHex
		}
	}
	return attrs
}
