package httpserver

import (
	"crypto/subtle"
	"encoding/json"

	"github.com/go-monolith/mono"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
)

func (m *Module) registerRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	if m.feed != nil {
		app.Get("/activity", m.activityHandler)
	}
	if m.sink != nil && m.secret != "" {
		app.Post("/telegram/:secret", m.webhookHandler)
	}
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "healthy"}
	if len(m.checks) > 0 {
		resp.Components = make(map[string]mono.HealthStatus, len(m.checks))
	}

	for name, check := range m.checks {
		status := check.Health(c.UserContext())
		resp.Components[name] = status
		if !status.Healthy {
			resp.Status = "unhealthy"
		}
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// activityHandler handles GET /activity.
func (m *Module) activityHandler(c *fiber.Ctx) error {
	entries := m.feed.Recent()
	return c.JSON(ActivityResponse{
		Entries: entries,
		Count:   len(entries),
	})
}

// webhookHandler handles POST /telegram/:secret.
func (m *Module) webhookHandler(c *fiber.Ctx) error {
	if subtle.ConstantTimeCompare([]byte(c.Params("secret")), []byte(m.secret)) != 1 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Not Found",
		})
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(c.Body(), &update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid update payload",
		})
	}

	if err := m.sink.Enqueue(c.UserContext(), update); err != nil {
		m.logger.Warn("Failed to enqueue update", "update_id", update.UpdateID, "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "unavailable",
			Message: "Bot is not accepting updates",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
