package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"storefront/app/controller"
	"storefront/app/router"
	"storefront/db"
	"storefront/pricing"
	"storefront/repository"
	"storefront/service"
)

// Config holds the environment driven settings of the application
type Config struct {
	BaseURL         string
	CredentialsPath string
	TransferPhone   string
	ImageCacheDir   string
}

// ConfigFromEnv reads Config from the environment
func ConfigFromEnv(port string) Config {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}
	return Config{
		BaseURL:         baseURL,
		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		TransferPhone:   os.Getenv("BANK_TRANSFER_PHONE"),
		ImageCacheDir:   os.Getenv("IMAGE_CACHE_DIR"),
	}
}

// Initialize initializes the application and returns the routed mux
func Initialize(ctx context.Context, cfg Config) (*http.ServeMux, error) {
	// Initialize database connection
	if err := db.InitDB(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	variantRepo := repository.NewVariantRepository()
	cartRepo := repository.NewCartRepository()
	zoneRepo := repository.NewShippingZoneRepository()

	// Drive is optional: variants without a Drive file fall back to their image URL
	var driveSource service.ImageSource
	if cfg.CredentialsPath != "" {
		driveService, err := service.NewDriveService(ctx, cfg.CredentialsPath)
		if err != nil {
			return nil, err
		}
		driveSource = driveService
		log.Printf("✓ Drive image source enabled")
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, Drive images disabled")
	}

	// Initialize services
	miniCart, err := service.NewMiniCartRenderer()
	if err != nil {
		return nil, err
	}
	cartService := service.NewCartService(cartRepo, miniCart)
	imageService := service.NewVariantImageService(
		service.NewImageOptimizer(cfg.ImageCacheDir),
		driveSource,
		service.NewHTTPImageSource(nil, cfg.BaseURL),
	)
	sheetService, err := service.NewProductSheetService(variantRepo, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	// Create controllers
	controllers := &router.Controllers{
		ProductDetail: controller.NewProductDetailController(variantRepo),
		VariantImage:  controller.NewVariantImageController(variantRepo, imageService),
		Cart:          controller.NewCartController(cartService),
		Checkout:      controller.NewCheckoutController(zoneRepo, pricing.NewCheckoutCalculator(cfg.TransferPhone)),
		ProductSheet:  controller.NewProductSheetController(sheetService),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	return mux, nil
}
