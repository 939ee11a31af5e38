package controllers

import (
	"github.com/gin-gonic/gin"

	"grillcity-api/middlewares"
)

// RegisterRoutes wires the public API. Route names follow the original
// clients, including the legacy /productss drop-down list.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	// catalog and reference data
	r.GET("/productTypes", h.ListProductTypes)
	r.GET("/products", h.ListCatalog)
	r.GET("/productss", h.ListProducts)
	r.GET("/providers", h.ListProviders)
	r.GET("/discounts", h.ListDiscounts)

	// stock
	r.POST("/updateProductStock", h.UpdateProductStock)
	r.GET("/getProductMovements", h.ListProductMovements)

	// desktop sales and reporting
	r.POST("/CreateOrder", h.CreateOrder)
	r.GET("/orders", h.ListOrders)
	r.GET("/ordersByDate", h.ListOrdersByDate)
	r.GET("/orderStatsByProvider", h.OrderStatsByProvider)
	r.GET("/statistics", h.Statistics)

	// mobile clients
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/CreateMobileOrder", h.CreateMobileOrder)
	r.GET("/ordersByUser", h.OrdersByUser)

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(h.jwtSecret))
	auth.GET("/myOrders", h.MyOrders)
}
