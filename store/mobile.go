package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"grillcity-api/models"
)

// CreateMobileOrder creates one order header plus a line item per
// requested product, decrementing stock as it goes. Everything commits as
// a single transaction; a failed decrement rolls the whole order back.
// Items are processed in ascending product-id order so concurrent orders
// touch rows in a consistent order.
//
// The pickup code is a random 4-digit string with no uniqueness check, so
// two open orders can collide; staff verify against the order id as well.
func (s *Store) CreateMobileOrder(ctx context.Context, clientID int, items map[int]int) (*models.MobileOrderResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidArgument)
	}
	for id, qty := range items {
		if qty <= 0 {
			return nil, fmt.Errorf("%w: quantity for product %d must be greater than zero", ErrInvalidArgument, id)
		}
	}

	ids := make([]int, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = ?`, clientID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %d: %w", clientID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	products, err := s.productsByID(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if missing := missingIDs(ids, products); len(missing) > 0 {
		return nil, fmt.Errorf("products %s: %w", joinIDs(missing), ErrNotFound)
	}
	for _, id := range ids {
		p := products[id]
		if p.stock < items[id] {
			return nil, fmt.Errorf("%w: product %q", ErrInsufficientStock, p.name)
		}
	}

	code := strconv.Itoa(1000 + rand.Intn(9000))

	res, err := tx.ExecContext(ctx,
		`INSERT INTO mobile_orders (client_id, date_of_order, pickup_code, status_id) VALUES (?, NOW(), ?, 1)`,
		clientID, code)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var totalPrice float64
	lines := make([]models.MobileOrderLine, 0, len(ids))
	for _, id := range ids {
		p := products[id]
		qty := items[id]

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mobile_order_items (order_id, product_id, quantity) VALUES (?, ?, ?)`,
			orderID, id, qty); err != nil {
			return nil, err
		}
		if err := s.decrementStock(ctx, tx, id, qty); err != nil {
			return nil, err
		}

		lineTotal := round2(p.price * float64(qty))
		totalPrice += lineTotal
		lines = append(lines, models.MobileOrderLine{
			ProductID:    id,
			ProductName:  p.name,
			Quantity:     qty,
			PricePerItem: p.price,
			Total:        lineTotal,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.MobileOrderResult{
		OrderID:    int(orderID),
		PickupCode: code,
		TotalPrice: round2(totalPrice),
		Products:   lines,
	}, nil
}

type productRow struct {
	name  string
	price float64
	stock int
}

func (s *Store) productsByID(ctx context.Context, tx *sql.Tx, ids []int) (map[int]productRow, error) {
	placeholders := strings.Repeat(",?", len(ids))[1:]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, product_name, price, quantity_in_stock FROM products WHERE id IN (`+placeholders+`) ORDER BY id`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[int]productRow, len(ids))
	for rows.Next() {
		var (
			id int
			p  productRow
		)
		if err := rows.Scan(&id, &p.name, &p.price, &p.stock); err != nil {
			return nil, err
		}
		products[id] = p
	}
	return products, rows.Err()
}

func missingIDs(ids []int, found map[int]productRow) []int {
	var missing []int
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// OrdersByUser returns a client's order headers with status and line
// items, newest first. One joined query, grouped in memory.
func (s *Store) OrdersByUser(ctx context.Context, userID int) ([]models.MobileOrderView, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.id, o.date_of_order, o.pickup_code, st.status_name, i.product_id, p.product_name, i.quantity FROM mobile_orders o JOIN order_statuses st ON st.id = o.status_id LEFT JOIN mobile_order_items i ON i.order_id = o.id LEFT JOIN products p ON p.id = i.product_id WHERE o.client_id = ? ORDER BY o.date_of_order DESC, o.id DESC, i.product_id ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.MobileOrderView{}
	index := map[int]int{}
	for rows.Next() {
		var (
			orderID     int
			dateOfOrder sql.NullTime
			pickupCode  string
			statusName  string
			productID   sql.NullInt64
			productName sql.NullString
			quantity    sql.NullInt64
		)
		if err := rows.Scan(&orderID, &dateOfOrder, &pickupCode, &statusName,
			&productID, &productName, &quantity); err != nil {
			return nil, err
		}

		pos, ok := index[orderID]
		if !ok {
			pos = len(orders)
			index[orderID] = pos
			orders = append(orders, models.MobileOrderView{
				OrderID:    orderID,
				Date:       dateOfOrder.Time.Format("02.01.2006"),
				PickupCode: pickupCode,
				Status:     statusName,
				Products:   []models.MobileOrderItemView{},
			})
		}
		if productID.Valid {
			orders[pos].Products = append(orders[pos].Products, models.MobileOrderItemView{
				ProductID:   int(productID.Int64),
				ProductName: productName.String,
				Quantity:    int(quantity.Int64),
			})
		}
	}
	return orders, rows.Err()
}
