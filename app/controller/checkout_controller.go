package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"storefront/models"
	"storefront/pricing"
	"storefront/repository"
	"storefront/utils"
)

// CheckoutController handles HTTP requests for the checkout sidebar
type CheckoutController struct {
	zones      repository.ShippingZoneRepositoryInterface
	calculator *pricing.CheckoutCalculator
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(zones repository.ShippingZoneRepositoryInterface, calculator *pricing.CheckoutCalculator) *CheckoutController {
	return &CheckoutController{
		zones:      zones,
		calculator: calculator,
	}
}

// Summary handles GET /checkout/summary?subtotal=&zone=&mode=&payment=
// An unknown or inactive zone is treated as no zone selected
func (c *CheckoutController) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := models.CheckoutInput{
		Subtotal:      utils.ParseDecimal(query.Get("subtotal")),
		DeliveryMode:  models.DeliveryMode(strings.TrimSpace(query.Get("mode"))),
		PaymentMethod: query.Get("payment"),
	}

	if rawZone := strings.TrimSpace(query.Get("zone")); rawZone != "" {
		zoneID, err := strconv.ParseInt(rawZone, 10, 64)
		if err == nil && zoneID > 0 {
			zone, err := c.zones.GetActiveByID(r.Context(), zoneID)
			switch {
			case err == nil:
				input.Zone = zone
			case errors.Is(err, repository.ErrNotFound):
				log.Printf("⚠️  Summary: shipping zone %d not found or inactive", zoneID)
			default:
				log.Printf("❌ Summary: Error fetching shipping zone %d: %v", zoneID, err)
				http.Error(w, "Failed to load shipping zone", http.StatusInternalServerError)
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, c.calculator.Summarize(input))
}

// ListZones handles GET /checkout/zones
func (c *CheckoutController) ListZones(w http.ResponseWriter, r *http.Request) {
	zones, err := c.zones.ListActive(r.Context())
	if err != nil {
		log.Printf("❌ ListZones: Error listing shipping zones: %v", err)
		http.Error(w, "Failed to list shipping zones", http.StatusInternalServerError)
		return
	}
	if zones == nil {
		zones = []models.ShippingZone{}
	}
	writeJSON(w, http.StatusOK, zones)
}
