package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"storefront/app"
	"storefront/db"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		wd, err := os.Getwd()
		if err != nil {
			log.Printf("Warning: Could not get working directory: %v", err)
		} else {
			log.Printf("Current working directory: %s", wd)
		}

		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
		}
	}

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present (PORT from Render doesn't include it)
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}

	// Initialize application
	mux, err := app.Initialize(context.Background(), app.ConfigFromEnv(port))
	if err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()

	addr := "0.0.0.0:" + port
	log.Printf("Server starting on %s", addr)
	log.Printf("Cart summary endpoint: GET http://localhost:%s/cart/summary", port)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
