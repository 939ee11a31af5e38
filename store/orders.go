package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"grillcity-api/models"
)

// CreateOrder records one in-store sale: validates the product, the
// optional discount and the stock level, writes the order row and
// decrements stock, all in one transaction. The decrement is conditional
// on quantity_in_stock so a concurrent sale cannot push stock negative.
func (s *Store) CreateOrder(ctx context.Context, productID int, discountID *int, quantity int) (*models.CreateOrderResult, error) {
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
		price float64
		stock int
	)
	err = tx.QueryRowContext(ctx,
		`SELECT product_name, price, quantity_in_stock FROM products WHERE id = ?`,
		productID).Scan(&name, &price, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if stock < quantity {
		return nil, fmt.Errorf("%w: product %q", ErrInsufficientStock, name)
	}

	var discountPercent *int
	if discountID != nil {
		var pct int
		err = tx.QueryRowContext(ctx,
			`SELECT discount_percent FROM discounts WHERE id = ?`,
			*discountID).Scan(&pct)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("discount %d: %w", *discountID, ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		discountPercent = &pct
	}

	finalPrice := FinalPrice(price, discountPercent, quantity)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (product_id, discount_id, date_of_order, final_price) VALUES (?, ?, CURDATE(), ?)`,
		productID, discountID, finalPrice)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := s.decrementStock(ctx, tx, productID, quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.CreateOrderResult{
		Message:    "order created",
		OrderID:    int(orderID),
		Product:    name,
		Quantity:   quantity,
		FinalPrice: finalPrice,
	}, nil
}

// decrementStock re-validates stock inside the transaction: zero affected
// rows means another transaction got there first.
func (s *Store) decrementStock(ctx context.Context, tx *sql.Tx, productID, quantity int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET quantity_in_stock = quantity_in_stock - ? WHERE id = ? AND quantity_in_stock >= ?`,
		quantity, productID, quantity)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %d", ErrInsufficientStock, productID)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO product_movements (product_id, quantity, movement_type) VALUES (?, ?, 'out')`,
		productID, quantity)
	return err
}

const orderViewQuery = `SELECT o.id, o.date_of_order, o.final_price, o.product_id, p.product_name, pr.provider_name, d.discount_percent FROM orders o JOIN products p ON p.id = o.product_id LEFT JOIN providers pr ON pr.id = p.provider_id LEFT JOIN discounts d ON d.id = o.discount_id`

func (s *Store) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	return s.queryOrders(ctx, orderViewQuery+` ORDER BY o.date_of_order, o.id`)
}

// ListOrdersByDate returns sales in [start, end], end-of-day inclusive:
// the window is start <= date < end+1d.
func (s *Store) ListOrdersByDate(ctx context.Context, start, end time.Time) ([]models.OrderView, error) {
	return s.queryOrders(ctx,
		orderViewQuery+` WHERE o.date_of_order >= ? AND o.date_of_order < ? ORDER BY o.date_of_order, o.id`,
		dateArg(start), dateArg(end.AddDate(0, 0, 1)))
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]models.OrderView, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.OrderView{}
	for rows.Next() {
		var o models.OrderView
		if err := rows.Scan(&o.ID, &o.DateOfOrder, &o.FinalPrice, &o.ProductID,
			&o.ProductName, &o.ProviderName, &o.DiscountPercent); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ProviderRevenue aggregates sale revenue per provider within a date
// range, highest first. Sales of products without a provider are
// excluded; a provider with an empty name is labeled "unknown provider".
func (s *Store) ProviderRevenue(ctx context.Context, start, end time.Time) ([]models.ProviderRevenue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pr.provider_name, SUM(o.final_price) AS revenue FROM orders o JOIN products p ON p.id = o.product_id JOIN providers pr ON pr.id = p.provider_id WHERE o.date_of_order >= ? AND o.date_of_order < ? GROUP BY pr.provider_name ORDER BY revenue DESC`,
		dateArg(start), dateArg(end.AddDate(0, 0, 1)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.ProviderRevenue{}
	for rows.Next() {
		var r models.ProviderRevenue
		if err := rows.Scan(&r.ProviderName, &r.TotalRevenue); err != nil {
			return nil, err
		}
		if r.ProviderName == "" {
			r.ProviderName = "unknown provider"
		}
		stats = append(stats, r)
	}
	return stats, rows.Err()
}

// Statistics reports store-wide sales totals and the product with the
// most sales. Ties break on the earliest sale; with no sales the product
// is the "—" placeholder.
func (s *Store) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{MostPopularProduct: "—"}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(final_price), 0) FROM orders`).
		Scan(&stats.TotalOrders, &stats.TotalSales)
	if err != nil {
		return nil, err
	}

	var name string
	err = s.db.QueryRowContext(ctx,
		`SELECT p.product_name FROM orders o JOIN products p ON p.id = o.product_id GROUP BY p.product_name ORDER BY COUNT(*) DESC, MIN(o.id) ASC LIMIT 1`).
		Scan(&name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		stats.MostPopularProduct = name
	}
	return stats, nil
}

func dateArg(t time.Time) string {
	return t.Format("2006-01-02")
}
