package httpserver

import (
	"github.com/go-monolith/mono"
	"github.com/spapas/todo-telegram-bot/modules/activity"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string                       `json:"status"`
	Components map[string]mono.HealthStatus `json:"components,omitempty"`
}

// ActivityResponse is the body of GET /activity.
type ActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
	Count   int              `json:"count"`
}
