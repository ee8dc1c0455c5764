package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"storefront/service"
)

// ProductSheetService is the part of service.ProductSheetService the controller needs
type ProductSheetService interface {
	RenderHTML(ctx context.Context, productID int64) (string, error)
	GeneratePDF(ctx context.Context, productID int64) ([]byte, error)
}

var _ ProductSheetService = (*service.ProductSheetService)(nil)

// ProductSheetController handles HTTP requests for product price sheets
type ProductSheetController struct {
	sheets ProductSheetService
}

// NewProductSheetController creates a new ProductSheetController
func NewProductSheetController(sheets ProductSheetService) *ProductSheetController {
	return &ProductSheetController{
		sheets: sheets,
	}
}

// GetSheet handles GET /admin/products/{id}/sheet?format=html|pdf
// HTML is also the page Chrome loads when printing the PDF
func (c *ProductSheetController) GetSheet(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	log.Printf("📥 GetSheet: product=%d format=%s", productID, format)

	switch format {
	case "html":
		html, err := c.sheets.RenderHTML(r.Context(), productID)
		if err != nil {
			c.writeError(w, "RenderHTML", productID, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(html)); err != nil {
			log.Printf("❌ GetSheet: Error writing HTML response: %v", err)
		}

	case "pdf":
		pdfData, err := c.sheets.GeneratePDF(r.Context(), productID)
		if err != nil {
			c.writeError(w, "GeneratePDF", productID, err)
			return
		}
		filename := fmt.Sprintf("product_%d_sheet.pdf", productID)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Printf("❌ GetSheet: Error writing PDF response: %v", err)
		}

	default:
		http.Error(w, "format must be html or pdf", http.StatusBadRequest)
	}
}

func (c *ProductSheetController) writeError(w http.ResponseWriter, op string, productID int64, err error) {
	if errors.Is(err, service.ErrEmptyProduct) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	log.Printf("❌ GetSheet: %s failed for product %d: %v", op, productID, err)
	http.Error(w, fmt.Sprintf("Failed to generate sheet: %v", err), http.StatusInternalServerError)
}
