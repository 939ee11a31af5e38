package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListCatalog_All(t *testing.T) {
	s, mock := newMockStore(t)

	providerID := 3
	typeID := 1
	rows := sqlmock.NewRows([]string{"id", "product_name", "price", "quantity_in_stock", "photo", "provider_id", "product_type_id", "t_id", "type_name"}).
		AddRow(1, "Shashlik", 50.0, 8, "shashlik.jpg", providerID, typeID, typeID, "Grill").
		AddRow(2, "Bag", 5.0, 100, nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT p.id, p.product_name, p.price, p.quantity_in_stock, p.photo, p.provider_id, p.product_type_id, t.id, t.type_name FROM products p LEFT JOIN product_types t ON t.id = p.product_type_id ORDER BY p.id`)).
		WillReturnRows(rows)

	products, err := s.ListCatalog(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListCatalog: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ProductType == nil || products[0].ProductType.TypeName != "Grill" {
		t.Fatalf("type not joined: %+v", products[0])
	}
	if products[1].ProductType != nil {
		t.Fatalf("untyped product should have nil type: %+v", products[1])
	}
	if products[1].Photo != "" {
		t.Fatalf("NULL photo should scan to empty string, got %q", products[1].Photo)
	}
	expectationsMet(t, mock)
}

func TestListCatalog_FilteredByType(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT p.id, p.product_name, p.price, p.quantity_in_stock, p.photo, p.provider_id, p.product_type_id, t.id, t.type_name FROM products p LEFT JOIN product_types t ON t.id = p.product_type_id WHERE p.product_type_id = ? ORDER BY p.id`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "price", "quantity_in_stock", "photo", "provider_id", "product_type_id", "t_id", "type_name"}))

	products, err := s.ListCatalog(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListCatalog: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty result, got %+v", products)
	}
	expectationsMet(t, mock)
}

func TestListProductTypes(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, type_name FROM product_types ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_name"}).
			AddRow(1, "Grill").
			AddRow(2, "Drinks"))

	types, err := s.ListProductTypes(context.Background())
	if err != nil {
		t.Fatalf("ListProductTypes: %v", err)
	}
	if len(types) != 2 || types[1].TypeName != "Drinks" {
		t.Fatalf("unexpected types: %+v", types)
	}
	expectationsMet(t, mock)
}

func TestListProductMovements(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT m.product_id, p.product_name, m.quantity, m.movement_type, m.movement_date FROM product_movements m JOIN products p ON p.id = m.product_id ORDER BY m.movement_date DESC, m.id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "quantity", "movement_type", "movement_date"}).
			AddRow(1, "Shashlik", 20, "in", time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)).
			AddRow(1, "Shashlik", 2, "out", time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)))

	movements, err := s.ListProductMovements(context.Background())
	if err != nil {
		t.Fatalf("ListProductMovements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(movements))
	}
	if movements[0].MovementType != "in" || movements[1].MovementType != "out" {
		t.Fatalf("unexpected movements: %+v", movements)
	}
	expectationsMet(t, mock)
}
