package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spapas/todo-telegram-bot/modules/activity"
)

// UpdateSink accepts Telegram updates received by the webhook.
type UpdateSink interface {
	Enqueue(ctx context.Context, update tgbotapi.Update) error
}

// ActivityFeed exposes recent task activity.
type ActivityFeed interface {
	Recent() []activity.Entry
}

// HealthChecker reports the health of a single component.
type HealthChecker interface {
	Health(ctx context.Context) mono.HealthStatus
}

// Module serves the Telegram webhook, health and activity endpoints over Fiber.
type Module struct {
	port   int
	secret string
	app    *fiber.App
	sink   UpdateSink
	feed   ActivityFeed
	checks map[string]HealthChecker
	logger types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new HTTP server module. The webhook route is only
// served when secret is non-empty and an UpdateSink has been set.
func NewModule(port int, secret string, logger types.Logger) *Module {
	return &Module{
		port:   port,
		secret: secret,
		checks: make(map[string]HealthChecker),
		logger: logger.WithModule("http-server"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "http-server"
}

// SetUpdateSink sets the receiver of webhook updates.
func (m *Module) SetUpdateSink(sink UpdateSink) {
	m.sink = sink
}

// SetActivityFeed sets the source of the activity endpoint.
func (m *Module) SetActivityFeed(feed ActivityFeed) {
	m.feed = feed
}

// AddHealthCheck includes a component in the /health response.
func (m *Module) AddHealthCheck(name string, check HealthChecker) {
	m.checks[name] = check
}

// Start builds the Fiber app and starts listening.
func (m *Module) Start(ctx context.Context) error {
	m.app = m.newApp()

	errChan := make(chan error, 1)
	go func() {
		m.logger.Info("HTTP server starting", "port", m.port)
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}

	m.logger.Info("Shutting down HTTP server")
	if err := m.app.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "HTTP server not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

func (m *Module) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(m.loggingMiddleware())

	m.registerRoutes(app)
	return app
}

// loggingMiddleware logs each request by route pattern, so the webhook
// secret never reaches the logs.
func (m *Module) loggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		m.logger.Info("HTTP request",
			"method", c.Method(),
			"route", c.Route().Path,
			"status", c.Response().StatusCode(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
