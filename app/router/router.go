package router

import (
	"net/http"

	"storefront/app/controller"
)

type Controllers struct {
	ProductDetail *controller.ProductDetailController
	VariantImage  *controller.VariantImageController
	Cart          *controller.CartController
	Checkout      *controller.CheckoutController
	ProductSheet  *controller.ProductSheetController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)

	// Product detail routes
	// Resolve selection state for a stored variant
	mux.HandleFunc("GET /products/variants/{id}/selection", controllers.ProductDetail.GetSelection)

	// Resolve selection state from option attributes
	mux.HandleFunc("POST /products/variants/selection", controllers.ProductDetail.ResolveSelection)

	// Optimized variant image
	mux.HandleFunc("GET /products/variants/{id}/image", controllers.VariantImage.GetImage)

	// Cart routes
	mux.HandleFunc("GET /cart/summary", controllers.Cart.Summary)
	mux.HandleFunc("POST /cart/add/{variantID}", controllers.Cart.AddItem)
	mux.HandleFunc("POST /cart/items/{id}", controllers.Cart.UpdateItem)
	mux.HandleFunc("POST /cart/items/{id}/remove", controllers.Cart.RemoveItem)
	mux.HandleFunc("POST /cart/clear", controllers.Cart.Clear)

	// Checkout routes
	mux.HandleFunc("GET /checkout/summary", controllers.Checkout.Summary)
	mux.HandleFunc("GET /checkout/zones", controllers.Checkout.ListZones)

	// Admin product sheet (html or pdf)
	mux.HandleFunc("GET /admin/products/{id}/sheet", controllers.ProductSheet.GetSheet)
}
