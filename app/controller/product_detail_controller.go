package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"storefront/pricing"
	"storefront/repository"
)

// ProductDetailController handles HTTP requests for variant selection on the product page
type ProductDetailController struct {
	variants repository.VariantRepositoryInterface
}

// NewProductDetailController creates a new ProductDetailController
func NewProductDetailController(variants repository.VariantRepositoryInterface) *ProductDetailController {
	return &ProductDetailController{
		variants: variants,
	}
}

// GetSelection handles GET /products/variants/{id}/selection?qty=N
// Returns the resolved selection state for the stored variant
func (c *ProductDetailController) GetSelection(w http.ResponseWriter, r *http.Request) {
	variantID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid variant id", http.StatusBadRequest)
		return
	}

	variant, err := c.variants.GetByID(r.Context(), variantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Variant not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetSelection: Error fetching variant %d: %v", variantID, err)
		http.Error(w, fmt.Sprintf("Failed to get variant: %v", err), http.StatusInternalServerError)
		return
	}

	state := pricing.ResolveRaw(*variant, r.URL.Query().Get("qty"))
	writeJSON(w, http.StatusOK, state)
}

// ResolveSelectionRequest carries the raw data attributes of a variant option
// Example: {"attributes": {"price": "19,99", "stock": "3", "image": "/media/a.jpg"}, "qty": "5"}
// qty may be a JSON string or number; both go through the same lenient parsing.
type ResolveSelectionRequest struct {
	Attributes map[string]string `json:"attributes"`
	Qty        json.RawMessage   `json:"qty"`
}

// RawQty returns qty as text: the content of a JSON string, or the literal of any other value
func (req ResolveSelectionRequest) RawQty() string {
	var s string
	if err := json.Unmarshal(req.Qty, &s); err == nil {
		return s
	}
	return string(req.Qty)
}

// ResolveSelection handles POST /products/variants/selection
// Resolves a selection from option attributes without touching the database
func (c *ProductDetailController) ResolveSelection(w http.ResponseWriter, r *http.Request) {
	var req ResolveSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ ResolveSelection: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	variant := pricing.VariantFromAttributes(req.Attributes)
	writeJSON(w, http.StatusOK, pricing.ResolveRaw(variant, req.RawQty()))
}
