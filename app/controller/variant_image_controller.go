package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"storefront/models"
	"storefront/repository"
	"storefront/service"
)

// VariantImageService is the part of service.VariantImageService the controller needs
type VariantImageService interface {
	GetImage(ctx context.Context, variant models.Variant, size string) ([]byte, error)
}

var _ VariantImageService = (*service.VariantImageService)(nil)

// VariantImageController serves optimized variant images
type VariantImageController struct {
	variants repository.VariantRepositoryInterface
	images   VariantImageService
}

// NewVariantImageController creates a new VariantImageController
func NewVariantImageController(variants repository.VariantRepositoryInterface, images VariantImageService) *VariantImageController {
	return &VariantImageController{
		variants: variants,
		images:   images,
	}
}

// GetImage handles GET /products/variants/{id}/image?size=thumb|medium
// Returns an optimized JPEG; unknown sizes fall back to medium
func (c *VariantImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	variantID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid variant id", http.StatusBadRequest)
		return
	}
	size := service.NormalizeImageSize(r.URL.Query().Get("size"))

	variant, err := c.variants.GetByID(r.Context(), variantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Variant not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetImage: Error fetching variant %d: %v", variantID, err)
		http.Error(w, fmt.Sprintf("Failed to get variant: %v", err), http.StatusInternalServerError)
		return
	}

	data, err := c.images.GetImage(r.Context(), *variant, size)
	if err != nil {
		if errors.Is(err, service.ErrNoImageSource) {
			http.Error(w, "Variant has no image", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetImage: Error optimizing image for variant %d: %v", variantID, err)
		http.Error(w, fmt.Sprintf("Failed to get image: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ GetImage: Error writing image response: %v", err)
	}
}
