package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grillcity-api/config"
	"grillcity-api/controllers"
	"grillcity-api/middlewares"
	"grillcity-api/rabbitmq"
	"grillcity-api/store"
)

func main() {
	cfg := config.LoadConfig()

	st, err := store.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		log.Fatalf("Schema migration failed: %v", err)
	}

	var events *rabbitmq.Publisher
	if cfg.RabbitMQURL != "" {
		events, err = rabbitmq.New(cfg)
		if err != nil {
			log.Printf("RabbitMQ unavailable, continuing without events: %v", err)
			events = nil
		} else if err := events.SetupQueues(); err != nil {
			log.Printf("Failed to setup RabbitMQ queues, continuing without events: %v", err)
			events.Close()
			events = nil
		}
	}
	if events != nil {
		defer events.Close()
	}

	h := controllers.New(st, events, cfg.JWTSecret)

	r := gin.Default()
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	controllers.RegisterRoutes(r, h)

	addr := ":" + cfg.ServerPort
	log.Printf("GrillCity API starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
