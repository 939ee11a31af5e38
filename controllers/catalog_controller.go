package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"grillcity-api/middlewares"
	"grillcity-api/models"
)

// ListProductTypes returns the type lookup used for catalog filtering.
func (h *Handlers) ListProductTypes(c *gin.Context) {
	types, err := h.store.ListProductTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// ListCatalog returns products with their type, optionally filtered by
// typeId (0 or absent means no filter).
func (h *Handlers) ListCatalog(c *gin.Context) {
	typeID := 0
	if v := c.Query("typeId"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid typeId"})
			return
		}
		typeID = parsed
	}

	products, err := h.store.ListCatalog(c.Request.Context(), typeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListProducts is the flat list behind the desktop drop-downs.
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handlers) ListProviders(c *gin.Context) {
	providers, err := h.store.ListProviders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

func (h *Handlers) ListDiscounts(c *gin.Context) {
	discounts, err := h.store.ListDiscounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discounts)
}

func (h *Handlers) ListProductMovements(c *gin.Context) {
	movements, err := h.store.ListProductMovements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

// UpdateProductStock registers incoming stock for a product.
func (h *Handlers) UpdateProductStock(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordStoreOperation("restock", ok)
	}()

	productID, ok := intQuery(c, "productId")
	if !ok {
		return
	}
	quantity, ok := intQuery(c, "quantity")
	if !ok {
		return
	}

	result, err := h.store.RestockProduct(c.Request.Context(), productID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)

	h.publishEvent(models.OrderEvent{Type: "restock", ProductID: productID})
}
