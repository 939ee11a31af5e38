package models

import (
	"time"
)

// OrderView is an in-store sale enriched with its product, provider and
// discount, as shown in the desktop sales journal.
type OrderView struct {
	ID              int       `json:"id"`
	DateOfOrder     time.Time `json:"date_of_order"`
	FinalPrice      float64   `json:"final_price"`
	ProductID       int       `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProviderName    *string   `json:"provider_name"`
	DiscountPercent *int      `json:"discount_percent"`
}

type CreateOrderResult struct {
	Message    string  `json:"message"`
	OrderID    int     `json:"order_id"`
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	FinalPrice float64 `json:"final_price"`
}

type ProviderRevenue struct {
	ProviderName string  `json:"provider_name"`
	TotalRevenue float64 `json:"total_revenue"`
}

type Statistics struct {
	TotalOrders        int     `json:"total_orders"`
	TotalSales         float64 `json:"total_sales"`
	MostPopularProduct string  `json:"most_popular_product"`
}

type MobileOrderRequest struct {
	ClientID int         `json:"client_id" binding:"required"`
	Products map[int]int `json:"products" binding:"required"`
	// Accepted for wire compatibility with the mobile client; discounts
	// apply only to in-store sales.
	DiscountID *int `json:"discount_id"`
}

type MobileOrderLine struct {
	ProductID    int     `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	PricePerItem float64 `json:"price_per_item"`
	Total        float64 `json:"total"`
}

type MobileOrderResult struct {
	OrderID    int               `json:"order_id"`
	PickupCode string            `json:"pickup_code"`
	TotalPrice float64           `json:"total_price"`
	Products   []MobileOrderLine `json:"products"`
}

type MobileOrderItemView struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// MobileOrderView is one order header in a client's history. Date is
// formatted dd.mm.yyyy; the mobile UI renders it verbatim.
type MobileOrderView struct {
	OrderID    int                   `json:"order_id"`
	Date       string                `json:"date"`
	PickupCode string                `json:"pickup_code"`
	Status     string                `json:"status"`
	Products   []MobileOrderItemView `json:"products"`
}

type OrderEvent struct {
	Type      string    `json:"type"` // sale_created, order_created, restock
	OrderID   int       `json:"order_id,omitempty"`
	ProductID int       `json:"product_id,omitempty"`
	Total     float64   `json:"total,omitempty"`
	Occurred  time.Time `json:"occurred"`
}
