package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"grillcity-api/models"
	"grillcity-api/rabbitmq"
	"grillcity-api/store"
)

type Handlers struct {
	store     *store.Store
	events    *rabbitmq.Publisher
	jwtSecret string
}

// New builds the handler set. events may be nil when no broker is
// configured; event publishing is then skipped.
func New(s *store.Store, events *rabbitmq.Publisher, jwtSecret string) *Handlers {
	return &Handlers{store: s, events: events, jwtSecret: jwtSecret}
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInsufficientStock), errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, store.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := errStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

// intQuery parses a required integer query parameter.
func intQuery(c *gin.Context, key string) (int, bool) {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return v, true
}

// formOrQuery reads a value the way the original clients send it: form
// body first, query string as fallback.
func formOrQuery(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}

func (h *Handlers) publishEvent(ev models.OrderEvent) {
	if h.events == nil {
		return
	}
	ev.Occurred = time.Now()
	if err := h.events.PublishOrderEvent(ev); err != nil {
		log.Printf("Failed to publish %s event: %v", ev.Type, err)
	}
}
