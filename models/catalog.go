package models

import (
	"time"
)

type ProductType struct {
	ID       int    `json:"id"`
	TypeName string `json:"type_name"`
}

type Provider struct {
	ID           int    `json:"id"`
	ProviderName string `json:"provider_name"`
}

type Discount struct {
	ID              int `json:"id"`
	DiscountPercent int `json:"discount_percent"`
}

type Product struct {
	ID              int     `json:"id"`
	ProductName     string  `json:"product_name"`
	Price           float64 `json:"price"`
	QuantityInStock int     `json:"quantity_in_stock"`
	Photo           string  `json:"photo,omitempty"`
	ProviderID      *int    `json:"provider_id"`
	ProductTypeID   *int    `json:"product_type_id"`
}

// CatalogProduct is a /products row: the product plus its resolved type,
// so the mobile catalog can group without extra lookups.
type CatalogProduct struct {
	Product
	ProductType *ProductType `json:"product_type"`
}

type ProductMovement struct {
	ProductID    int       `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	MovementType string    `json:"movement_type"`
	MovementDate time.Time `json:"movement_date"`
}

type RestockResult struct {
	Message         string `json:"message"`
	Product         string `json:"product"`
	QuantityInStock int    `json:"quantity_in_stock"`
}
