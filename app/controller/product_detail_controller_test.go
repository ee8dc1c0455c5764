package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func getSelection(t *testing.T, c *ProductDetailController, id, qty string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/products/variants/"+id+"/selection?qty="+qty, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	c.GetSelection(rec, req)
	return rec
}

func TestGetSelection_ClampsToStock(t *testing.T) {
	c := NewProductDetailController(testVariants())

	rec := getSelection(t, c, "10", "99")
	require.Equal(t, http.StatusOK, rec.Code)

	var state models.SelectionState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 99, state.RequestedQuantity)
	assert.Equal(t, 3, state.EffectiveQuantity)
	assert.Equal(t, "59.97", state.LineTotalText)
	assert.Equal(t, models.StockTierLowStock, state.Tier)
	assert.False(t, state.IncrementEnabled)
	require.NotNil(t, state.Color)
	assert.Equal(t, "Rojo", state.Color.Name)
}

func TestGetSelection_OutOfStock(t *testing.T) {
	c := NewProductDetailController(testVariants())

	rec := getSelection(t, c, "11", "abc")
	require.Equal(t, http.StatusOK, rec.Code)

	var state models.SelectionState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 1, state.EffectiveQuantity)
	assert.Equal(t, models.StockTierOutOfStock, state.Tier)
	assert.Equal(t, "Agotado", state.StockMessage)
	assert.False(t, state.AddToCartEnabled)
	assert.False(t, state.QuantityEnabled)
}

func TestGetSelection_NotFoundAndBadID(t *testing.T) {
	c := NewProductDetailController(testVariants())

	assert.Equal(t, http.StatusNotFound, getSelection(t, c, "404", "1").Code)
	assert.Equal(t, http.StatusBadRequest, getSelection(t, c, "-1", "1").Code)
}

func TestResolveSelection(t *testing.T) {
	c := NewProductDetailController(testVariants())

	body := `{"attributes":{"price":"19,99","stock":"3","color":"Rojo","hex":"#FF0000"},"qty":"2"}`
	rec := httptest.NewRecorder()
	c.ResolveSelection(rec, httptest.NewRequest(http.MethodPost, "/products/variants/selection", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var state models.SelectionState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "19.99", state.UnitPriceText)
	assert.Equal(t, "39.98", state.LineTotalText)
	assert.Equal(t, "¡Solo quedan 3 unidades!", state.StockMessage)

	rec = httptest.NewRecorder()
	c.ResolveSelection(rec, httptest.NewRequest(http.MethodPost, "/products/variants/selection", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveSelection_NumericQty(t *testing.T) {
	c := NewProductDetailController(testVariants())
	attrs := `"attributes":{"price":"19,99","stock":"3"}`

	tests := []struct {
		name      string
		qty       string
		wantQty   int
		wantTotal string
	}{
		{"number", `5`, 3, "59.97"},
		{"number within stock", `2`, 2, "39.98"},
		{"fractional number", `2.7`, 2, "39.98"},
		{"null", `null`, 1, "19.99"},
		{"boolean", `true`, 1, "19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{` + attrs + `,"qty":` + tt.qty + `}`
			rec := httptest.NewRecorder()
			c.ResolveSelection(rec, httptest.NewRequest(http.MethodPost, "/products/variants/selection", strings.NewReader(body)))
			require.Equal(t, http.StatusOK, rec.Code)

			var state models.SelectionState
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
			assert.Equal(t, tt.wantQty, state.EffectiveQuantity)
			assert.Equal(t, tt.wantTotal, state.LineTotalText)
		})
	}

	// missing qty behaves like an empty string
	rec := httptest.NewRecorder()
	c.ResolveSelection(rec, httptest.NewRequest(http.MethodPost, "/products/variants/selection", strings.NewReader(`{`+attrs+`}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var state models.SelectionState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 1, state.EffectiveQuantity)
}
