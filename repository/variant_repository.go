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

// variantColumns is shared by every variant query; callers join products and colors as p and c
const variantColumns = `
	v.id,
	v.product_id,
	p.name,
	v.sku,
	v.price,
	v.stock,
	v.image_url,
	v.drive_file_id,
	COALESCE(c.name, '') AS color_name,
	COALESCE(c.hex_code, '') AS color_hex,
	v.is_active
`

// VariantRepository handles database operations for product variants
type VariantRepository struct{}

// NewVariantRepository creates a new VariantRepository
func NewVariantRepository() *VariantRepository {
	return &VariantRepository{}
}

// Ensure VariantRepository implements VariantRepositoryInterface
var _ VariantRepositoryInterface = (*VariantRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVariant(row rowScanner) (*models.Variant, error) {
	var v models.Variant
	err := row.Scan(
		&v.ID,
		&v.ProductID,
		&v.ProductName,
		&v.SKU,
		&v.Price,
		&v.Stock,
		&v.ImageURL,
		&v.DriveFileID,
		&v.ColorName,
		&v.ColorHex,
		&v.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByID retrieves an active variant of an active product
func (r *VariantRepository) GetByID(ctx context.Context, id int64) (*models.Variant, error) {
	log.Printf("🔍 GetVariantByID: id=%d", id)

	query := `
		SELECT ` + variantColumns + `
		FROM variants v
		INNER JOIN products p ON p.id = v.product_id
		LEFT JOIN colors c ON c.id = v.color_id
		WHERE v.id = $1
		  AND v.is_active = true
		  AND p.is_active = true
	`

	v, err := scanVariant(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("❌ Variant with id %d does not exist", id)
			return nil, fmt.Errorf("variant %d: %w", id, ErrNotFound)
		}
		log.Printf("❌ Error fetching variant: %v", err)
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}

	return v, nil
}

// ListByProduct retrieves the active variants of a product ordered by id
func (r *VariantRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Variant, error) {
	log.Printf("🔍 ListVariantsByProduct: product_id=%d", productID)

	query := `
		SELECT ` + variantColumns + `
		FROM variants v
		INNER JOIN products p ON p.id = v.product_id
		LEFT JOIN colors c ON c.id = v.color_id
		WHERE v.product_id = $1
		  AND v.is_active = true
		ORDER BY v.id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, productID)
	if err != nil {
		log.Printf("❌ Error querying variants: %v", err)
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []models.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			log.Printf("❌ Error scanning variant: %v", err)
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}

	log.Printf("✓ Found %d variants for product %d", len(variants), productID)
	return variants, nil
}
