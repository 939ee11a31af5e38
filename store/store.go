package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Store gives typed access to the GrillCity schema. All SQL lives here;
// controllers never touch the database directly.
type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// New wraps an existing connection, used by tests to inject sqlmock.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS product_types (
		id INT AUTO_INCREMENT PRIMARY KEY,
		type_name VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS providers (
		id INT AUTO_INCREMENT PRIMARY KEY,
		provider_name VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS discounts (
		id INT AUTO_INCREMENT PRIMARY KEY,
		discount_percent INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INT AUTO_INCREMENT PRIMARY KEY,
		product_name VARCHAR(200) NOT NULL,
		price DOUBLE NOT NULL,
		quantity_in_stock INT NOT NULL DEFAULT 0,
		photo TEXT,
		provider_id INT NULL,
		product_type_id INT NULL,
		CONSTRAINT fk_products_provider FOREIGN KEY (provider_id) REFERENCES providers (id),
		CONSTRAINT fk_products_type FOREIGN KEY (product_type_id) REFERENCES product_types (id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INT AUTO_INCREMENT PRIMARY KEY,
		product_id INT NOT NULL,
		discount_id INT NULL,
		date_of_order DATE NOT NULL,
		final_price DOUBLE NOT NULL,
		CONSTRAINT fk_orders_product FOREIGN KEY (product_id) REFERENCES products (id),
		CONSTRAINT fk_orders_discount FOREIGN KEY (discount_id) REFERENCES discounts (id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_statuses (
		id INT AUTO_INCREMENT PRIMARY KEY,
		status_name VARCHAR(50) NOT NULL
	)`,
	`INSERT IGNORE INTO order_statuses (id, status_name) VALUES (1, 'new'), (2, 'ready'), (3, 'picked up')`,
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		surname VARCHAR(100) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		patronymic VARCHAR(100) NULL,
		phone_number VARCHAR(20) NOT NULL UNIQUE,
		login VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mobile_orders (
		id INT AUTO_INCREMENT PRIMARY KEY,
		client_id INT NOT NULL,
		date_of_order DATETIME NOT NULL,
		pickup_code VARCHAR(4) NOT NULL,
		status_id INT NOT NULL DEFAULT 1,
		CONSTRAINT fk_mobile_orders_client FOREIGN KEY (client_id) REFERENCES users (id),
		CONSTRAINT fk_mobile_orders_status FOREIGN KEY (status_id) REFERENCES order_statuses (id)
	)`,
	`CREATE TABLE IF NOT EXISTS mobile_order_items (
		order_id INT NOT NULL,
		product_id INT NOT NULL,
		quantity INT NOT NULL,
		PRIMARY KEY (order_id, product_id),
		CONSTRAINT fk_items_order FOREIGN KEY (order_id) REFERENCES mobile_orders (id),
		CONSTRAINT fk_items_product FOREIGN KEY (product_id) REFERENCES products (id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_movements (
		id INT AUTO_INCREMENT PRIMARY KEY,
		product_id INT NOT NULL,
		quantity INT NOT NULL,
		movement_type VARCHAR(10) NOT NULL,
		movement_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_movements_product FOREIGN KEY (product_id) REFERENCES products (id) ON DELETE CASCADE
	)`,
}

// Migrate creates missing tables and seeds the order-status lookup.
// Every statement is idempotent, so it runs on each startup.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
