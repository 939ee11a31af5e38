package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"grillcity-api/middlewares"
	"grillcity-api/models"
	"grillcity-api/store"
	"grillcity-api/utils"
)

// Register creates a client account from the mobile app.
func (h *Handlers) Register(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordStoreOperation("register", ok)
	}()

	in := store.RegisterInput{
		Login:       formOrQuery(c, "login"),
		Password:    formOrQuery(c, "password"),
		Surname:     formOrQuery(c, "sname"),
		FirstName:   formOrQuery(c, "fname"),
		Patronymic:  formOrQuery(c, "patronumic"),
		PhoneNumber: formOrQuery(c, "phonenumber"),
	}

	profile, err := h.store.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Login checks credentials and returns the client profile plus a token
// for the authenticated routes.
func (h *Handlers) Login(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordStoreOperation("login", ok)
	}()

	login := formOrQuery(c, "login")
	password := formOrQuery(c, "password")

	profile, err := h.store.Authenticate(c.Request.Context(), login, password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateToken(profile.UserID, h.jwtSecret)
	if err != nil {
		log.Printf("Failed to sign token for user %d: %v", profile.UserID, err)
	} else {
		profile.Token = token
	}
	c.JSON(http.StatusOK, profile)
}

// CreateMobileOrder places a multi-item pickup order for a client.
func (h *Handlers) CreateMobileOrder(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordStoreOperation("create_mobile_order", ok)
	}()

	var req models.MobileOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.store.CreateMobileOrder(c.Request.Context(), req.ClientID, req.Products)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)

	h.publishEvent(models.OrderEvent{
		Type:    "order_created",
		OrderID: result.OrderID,
		Total:   result.TotalPrice,
	})
}

// OrdersByUser lists a client's pickup orders by explicit userId.
func (h *Handlers) OrdersByUser(c *gin.Context) {
	userID, ok := intQuery(c, "userId")
	if !ok {
		return
	}
	orders, err := h.store.OrdersByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// MyOrders is the authenticated variant of OrdersByUser: the client id
// comes from the access token.
func (h *Handlers) MyOrders(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	orders, err := h.store.OrdersByUser(c.Request.Context(), userID.(int))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
