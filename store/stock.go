package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"grillcity-api/models"
)

// RestockProduct adds incoming stock and records an "in" movement. The
// update and the movement row commit together.
func (s *Store) RestockProduct(ctx context.Context, productID, quantity int) (*models.RestockResult, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidArgument)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		name  string
		stock int
	)
	err = tx.QueryRowContext(ctx,
		`SELECT product_name, quantity_in_stock FROM products WHERE id = ?`,
		productID).Scan(&name, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET quantity_in_stock = quantity_in_stock + ? WHERE id = ?`,
		quantity, productID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO product_movements (product_id, quantity, movement_type) VALUES (?, ?, 'in')`,
		productID, quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.RestockResult{
		Message:         "stock updated",
		Product:         name,
		QuantityInStock: stock + quantity,
	}, nil
}
