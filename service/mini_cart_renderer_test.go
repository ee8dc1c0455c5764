package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func TestMiniCartRenderer_LimitsItems(t *testing.T) {
	r, err := NewMiniCartRenderer()
	require.NoError(t, err)

	var items []models.CartItem
	for i := 1; i <= 10; i++ {
		items = append(items, models.CartItem{
			ID:          int64(i),
			ProductName: fmt.Sprintf("Producto %d", i),
			UnitPrice:   decimal.RequireFromString("2.50"),
			Quantity:    1,
		})
	}

	html, err := r.Render(items, decimal.RequireFromString("25"))
	require.NoError(t, err)
	assert.Equal(t, MiniCartMaxItems, strings.Count(html, `class="mc2-item`))
	assert.Contains(t, html, "+2 más")
	assert.Contains(t, html, "$25.00")
	assert.NotContains(t, html, "Producto 9")
}

func TestMiniCartRenderer_EscapesNames(t *testing.T) {
	r, err := NewMiniCartRenderer()
	require.NoError(t, err)

	html, err := r.Render([]models.CartItem{{
		ID:          1,
		ProductName: "<script>alert(1)</script>",
		UnitPrice:   decimal.RequireFromString("1"),
		Quantity:    2,
	}}, decimal.RequireFromString("2"))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "2 x $1.00")
}
