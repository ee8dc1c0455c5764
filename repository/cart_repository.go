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

// cartItemQuery selects cart lines with the current price and stock of their variant
const cartItemQuery = `
	SELECT
		ci.id,
		ci.cart_id,
		ci.variant_id,
		p.name,
		COALESCE(c.name, '') AS color_name,
		v.image_url,
		v.price,
		ci.quantity,
		v.stock
	FROM cart_items ci
	INNER JOIN variants v ON v.id = ci.variant_id
	INNER JOIN products p ON p.id = v.product_id
	LEFT JOIN colors c ON c.id = v.color_id
`

// CartRepository handles database operations for carts and cart items
type CartRepository struct{}

// NewCartRepository creates a new CartRepository
func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

func scanCartItem(row rowScanner) (*models.CartItem, error) {
	var item models.CartItem
	err := row.Scan(
		&item.ID,
		&item.CartID,
		&item.VariantID,
		&item.ProductName,
		&item.ColorName,
		&item.ImageURL,
		&item.UnitPrice,
		&item.Quantity,
		&item.Stock,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetOrCreateActive returns the active cart for a session, creating it when missing
func (r *CartRepository) GetOrCreateActive(ctx context.Context, sessionKey string) (*models.Cart, error) {
	var cart models.Cart
	err := db.DB.QueryRowContext(ctx, `
		SELECT id, session_key, is_active, created_at::text
		FROM carts
		WHERE session_key = $1 AND is_active = true
		ORDER BY id ASC
		LIMIT 1
	`, sessionKey).Scan(&cart.ID, &cart.SessionKey, &cart.IsActive, &cart.CreatedAt)
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("❌ Error fetching cart: %v", err)
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	err = db.DB.QueryRowContext(ctx, `
		INSERT INTO carts (session_key, is_active, created_at, updated_at)
		VALUES ($1, true, NOW(), NOW())
		RETURNING id, session_key, is_active, created_at::text
	`, sessionKey).Scan(&cart.ID, &cart.SessionKey, &cart.IsActive, &cart.CreatedAt)
	if err != nil {
		log.Printf("❌ Error creating cart: %v", err)
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	log.Printf("🛒 Created cart id=%d", cart.ID)
	return &cart, nil
}

// ListItems retrieves every line of a cart ordered by id
func (r *CartRepository) ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	rows, err := db.DB.QueryContext(ctx, cartItemQuery+`
		WHERE ci.cart_id = $1
		ORDER BY ci.id ASC
	`, cartID)
	if err != nil {
		log.Printf("❌ Error querying cart items: %v", err)
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}
	return items, nil
}

// GetItem retrieves a single line of a cart
func (r *CartRepository) GetItem(ctx context.Context, cartID, itemID int64) (*models.CartItem, error) {
	item, err := scanCartItem(db.DB.QueryRowContext(ctx, cartItemQuery+`
		WHERE ci.cart_id = $1 AND ci.id = $2
	`, cartID, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return item, nil
}

// lockVariantStock locks an active variant row and returns its stock.
// Every quantity change locks the variant first so concurrent changes to the same variant serialize.
func lockVariantStock(ctx context.Context, tx *sql.Tx, variantID int64) (int, error) {
	var stock int
	err := tx.QueryRowContext(ctx, `
		SELECT v.stock
		FROM variants v
		INNER JOIN products p ON p.id = v.product_id
		WHERE v.id = $1
		  AND v.is_active = true
		  AND p.is_active = true
		FOR UPDATE OF v
	`, variantID).Scan(&stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("variant %d: %w", variantID, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to lock variant: %w", err)
	}
	return stock, nil
}

// AdjustVariantQuantity adds or updates the line of a variant inside one transaction
func (r *CartRepository) AdjustVariantQuantity(ctx context.Context, cartID, variantID int64, decide QuantityFunc) (int, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stock, err := lockVariantStock(ctx, tx, variantID)
	if err != nil {
		return 0, err
	}

	current := 0
	err = tx.QueryRowContext(ctx, `
		SELECT quantity FROM cart_items
		WHERE cart_id = $1 AND variant_id = $2
		FOR UPDATE
	`, cartID, variantID).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("❌ Error locking cart item: %v", err)
		return 0, fmt.Errorf("failed to lock cart item: %w", err)
	}

	quantity, err := decide(current, stock)
	if err != nil {
		return 0, err
	}

	log.Printf("🛒 AdjustVariantQuantity: cart_id=%d, variant_id=%d, %d -> %d", cartID, variantID, current, quantity)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, variant_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, variant_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`, cartID, variantID, quantity)
	if err != nil {
		log.Printf("❌ Error upserting cart item: %v", err)
		return 0, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return quantity, nil
}

// AdjustItemQuantity changes an existing line inside one transaction, deleting it at zero or less
func (r *CartRepository) AdjustItemQuantity(ctx context.Context, cartID, itemID int64, decide QuantityFunc) (int, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var variantID int64
	err = tx.QueryRowContext(ctx, `SELECT variant_id FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID).Scan(&variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to get cart item: %w", err)
	}

	// Same lock order as AdjustVariantQuantity: variant, then line
	var stock int
	err = tx.QueryRowContext(ctx, `SELECT stock FROM variants WHERE id = $1 FOR UPDATE`, variantID).Scan(&stock)
	if err != nil {
		return 0, fmt.Errorf("failed to lock variant: %w", err)
	}

	var current int
	err = tx.QueryRowContext(ctx, `
		SELECT quantity FROM cart_items
		WHERE cart_id = $1 AND id = $2
		FOR UPDATE
	`, cartID, itemID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to lock cart item: %w", err)
	}

	quantity, err := decide(current, stock)
	if err != nil {
		return 0, err
	}

	if quantity <= 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND id = $2`, cartID, itemID, quantity)
	}
	if err != nil {
		log.Printf("❌ Error updating cart item: %v", err)
		return 0, fmt.Errorf("failed to update cart item: %w", err)
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return quantity, nil
}

// DeleteItem removes a line from a cart; deleting a missing line is not an error
func (r *CartRepository) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID); err != nil {
		log.Printf("❌ Error deleting cart item: %v", err)
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

// ClearItems removes every line of a cart
func (r *CartRepository) ClearItems(ctx context.Context, cartID int64) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		log.Printf("❌ Error clearing cart: %v", err)
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func touchCart(ctx context.Context, tx *sql.Tx, cartID int64) error {
	if _, err := tx.ExecContext(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}
	return nil
}
