package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"storefront/db"
	"storefront/models"
)

// ShippingZoneRepository handles database operations for shipping zones
type ShippingZoneRepository struct{}

// NewShippingZoneRepository creates a new ShippingZoneRepository
func NewShippingZoneRepository() *ShippingZoneRepository {
	return &ShippingZoneRepository{}
}

// Ensure ShippingZoneRepository implements ShippingZoneRepositoryInterface
var _ ShippingZoneRepositoryInterface = (*ShippingZoneRepository)(nil)

// GetActiveByID retrieves an active shipping zone
func (r *ShippingZoneRepository) GetActiveByID(ctx context.Context, id int64) (*models.ShippingZone, error) {
	query := `
		SELECT id, name, cost, is_active
		FROM shipping_zones
		WHERE id = $1 AND is_active = true
	`

	var zone models.ShippingZone
	err := db.DB.QueryRowContext(ctx, query, id).Scan(&zone.ID, &zone.Name, &zone.Cost, &zone.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shipping zone %d: %w", id, ErrNotFound)
		}
		log.Printf("❌ Error fetching shipping zone: %v", err)
		return nil, fmt.Errorf("failed to get shipping zone: %w", err)
	}
	return &zone, nil
}

// ListActive retrieves all active shipping zones ordered by name
func (r *ShippingZoneRepository) ListActive(ctx context.Context) ([]models.ShippingZone, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, name, cost, is_active
		FROM shipping_zones
		WHERE is_active = true
		ORDER BY name ASC
	`)
	if err != nil {
		log.Printf("❌ Error querying shipping zones: %v", err)
		return nil, fmt.Errorf("failed to query shipping zones: %w", err)
	}
	defer rows.Close()

	var zones []models.ShippingZone
	for rows.Next() {
		var zone models.ShippingZone
		if err := rows.Scan(&zone.ID, &zone.Name, &zone.Cost, &zone.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan shipping zone: %w", err)
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shipping zones: %w", err)
	}
	return zones, nil
}
