package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"grillcity-api/middlewares"
	"grillcity-api/models"
)

// CreateOrder records an in-store sale: one product, optional discount.
func (h *Handlers) CreateOrder(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordStoreOperation("create_order", ok)
	}()

	productID, ok := intQuery(c, "productId")
	if !ok {
		return
	}
	quantity, ok := intQuery(c, "quantity")
	if !ok {
		return
	}
	var discountID *int
	if v := c.Query("discountId"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discountId"})
			return
		}
		discountID = &parsed
	}

	result, err := h.store.CreateOrder(c.Request.Context(), productID, discountID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)

	h.publishEvent(models.OrderEvent{
		Type:      "sale_created",
		OrderID:   result.OrderID,
		ProductID: productID,
		Total:     result.FinalPrice,
	})
}

func (h *Handlers) ListOrders(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListOrdersByDate returns sales in the inclusive [startDate, endDate]
// range. Dates are plain YYYY-MM-DD.
func (h *Handlers) ListOrdersByDate(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	orders, err := h.store.ListOrdersByDate(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handlers) OrderStatsByProvider(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	stats, err := h.store.ProviderRevenue(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) Statistics(c *gin.Context) {
	stats, err := h.store.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
