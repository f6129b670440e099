package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	DB        *sql.DB
	RabbitMQ  *amqp091.Connection
	Redis     *redis.Client
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		Redis:     rdb,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	status := "ok"

	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			deps["database"] = fmt.Sprintf("down: %v", err)
			status = "degraded"
		} else {
			deps["database"] = "up"
		}
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "down: connection closed"
			status = "degraded"
		} else {
			deps["rabbitmq"] = "up"
		}
	} else {
		deps["rabbitmq"] = "disabled"
	}

	if h.Redis != nil {
		if err := h.Redis.Ping(r.Context()).Err(); err != nil {
			deps["redis"] = fmt.Sprintf("down: %v", err)
			status = "degraded"
		} else {
			deps["redis"] = "up"
		}
	} else {
		deps["redis"] = "disabled"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
