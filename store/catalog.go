package store

import (
	"context"
	"database/sql"

	"grillcity-api/models"
)

func (s *Store) ListProductTypes(ctx context.Context) ([]models.ProductType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, type_name FROM product_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []models.ProductType{}
	for rows.Next() {
		var t models.ProductType
		if err := rows.Scan(&t.ID, &t.TypeName); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// ListCatalog returns products joined with their type. typeID 0 means no
// filter.
func (s *Store) ListCatalog(ctx context.Context, typeID int) ([]models.CatalogProduct, error) {
	query := `SELECT p.id, p.product_name, p.price, p.quantity_in_stock, p.photo, p.provider_id, p.product_type_id, t.id, t.type_name FROM products p LEFT JOIN product_types t ON t.id = p.product_type_id`
	args := []any{}
	if typeID != 0 {
		query += ` WHERE p.product_type_id = ?`
		args = append(args, typeID)
	}
	query += ` ORDER BY p.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.CatalogProduct{}
	for rows.Next() {
		var (
			cp       models.CatalogProduct
			photo    sql.NullString
			typeIDN  sql.NullInt64
			typeName sql.NullString
		)
		if err := rows.Scan(&cp.ID, &cp.ProductName, &cp.Price, &cp.QuantityInStock,
			&photo, &cp.ProviderID, &cp.ProductTypeID, &typeIDN, &typeName); err != nil {
			return nil, err
		}
		cp.Photo = photo.String
		if typeIDN.Valid {
			cp.ProductType = &models.ProductType{ID: int(typeIDN.Int64), TypeName: typeName.String}
		}
		products = append(products, cp)
	}
	return products, rows.Err()
}

// ListProducts is the flat product list used by desktop drop-downs.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, product_name, price, quantity_in_stock, photo, provider_id, product_type_id FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var (
			p     models.Product
			photo sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Price, &p.QuantityInStock,
			&photo, &p.ProviderID, &p.ProductTypeID); err != nil {
			return nil, err
		}
		p.Photo = photo.String
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) ListProviders(ctx context.Context) ([]models.Provider, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, provider_name FROM providers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := []models.Provider{}
	for rows.Next() {
		var p models.Provider
		if err := rows.Scan(&p.ID, &p.ProviderName); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func (s *Store) ListDiscounts(ctx context.Context) ([]models.Discount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, discount_percent FROM discounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	discounts := []models.Discount{}
	for rows.Next() {
		var d models.Discount
		if err := rows.Scan(&d.ID, &d.DiscountPercent); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}

// ListProductMovements returns the stock movement log, newest first,
// joined with product names for reporting.
func (s *Store) ListProductMovements(ctx context.Context) ([]models.ProductMovement, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT m.product_id, p.product_name, m.quantity, m.movement_type, m.movement_date FROM product_movements m JOIN products p ON p.id = m.product_id ORDER BY m.movement_date DESC, m.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := []models.ProductMovement{}
	for rows.Next() {
		var m models.ProductMovement
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.Quantity, &m.MovementType, &m.MovementDate); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
