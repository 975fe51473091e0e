package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/spapas/todo-telegram-bot/modules/task"
)

const (
	pollTimeout   = 60
	updateTimeout = 30 * time.Second
	queueSize     = 64
)

// ErrNotRunning is returned by Enqueue when the module is not processing updates.
var ErrNotRunning = errors.New("bot is not running")

// Options configures the Telegram transport.
// Updates are received by long polling unless WebhookURL is set.
type Options struct {
	Token         string
	WebhookURL    string
	WebhookSecret string
}

// Module receives Telegram updates and answers them through the task port.
type Module struct {
	opts    Options
	api     *tgbotapi.BotAPI
	sender  Sender
	tasks   task.TaskPort
	handler *Handler
	queue   chan tgbotapi.Update
	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new bot Module.
func NewModule(opts Options, logger types.Logger) *Module {
	return &Module{
		opts:   opts,
		queue:  make(chan tgbotapi.Update, queueSize),
		logger: logger.WithModule("bot"),
	}
}

// WebhookEndpoint is the public URL Telegram posts updates to.
func WebhookEndpoint(baseURL, secret string) string {
	return strings.TrimRight(baseURL, "/") + "/telegram/" + secret
}

// Name returns the module name.
func (m *Module) Name() string {
	return "bot"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.tasks = task.NewTaskAdapter(container)
	}
}

// Webhook reports whether updates arrive through Enqueue instead of polling.
func (m *Module) Webhook() bool {
	return m.opts.WebhookURL != ""
}

// Start connects to Telegram and begins processing updates.
func (m *Module) Start(_ context.Context) error {
	if m.tasks == nil {
		return fmt.Errorf("task dependency not set")
	}

	api, err := tgbotapi.NewBotAPI(m.opts.Token)
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	m.api = api
	m.sender = api
	m.handler = NewHandler(m.tasks, m.logger)

	if _, err := api.Request(tgbotapi.NewSetMyCommands(Commands...)); err != nil {
		m.logger.Warn("Failed to register bot commands", "error", err)
	}

	var source tgbotapi.UpdatesChannel
	if m.Webhook() {
		wh, err := tgbotapi.NewWebhook(WebhookEndpoint(m.opts.WebhookURL, m.opts.WebhookSecret))
		if err != nil {
			return fmt.Errorf("invalid webhook url: %w", err)
		}
		if _, err := api.Request(wh); err != nil {
			return fmt.Errorf("failed to register webhook: %w", err)
		}
		source = m.queue
		m.logger.Info("Receiving updates via webhook", "url", m.opts.WebhookURL)
	} else {
		if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			m.logger.Warn("Failed to remove webhook", "error", err)
		}
		u := tgbotapi.NewUpdate(0)
		u.Timeout = pollTimeout
		source = api.GetUpdatesChan(u)
		m.logger.Info("Receiving updates via long polling")
	}

	m.run(source)
	m.logger.Info("Bot module started", "username", api.Self.UserName)
	return nil
}

// run drains source on a single goroutine until Stop is called.
func (m *Module) run(source tgbotapi.UpdatesChannel) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running.Store(true)

	go func() {
		defer close(m.done)
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-source:
				if !ok {
					return
				}
				m.process(ctx, update)
			}
		}
	}()
}

// Enqueue hands a webhook update to the processing loop.
func (m *Module) Enqueue(ctx context.Context, update tgbotapi.Update) error {
	if !m.running.Load() || !m.Webhook() {
		return ErrNotRunning
	}

	select {
	case m.queue <- update:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends update processing and waits for the in-flight update.
func (m *Module) Stop(ctx context.Context) error {
	if m.api != nil && !m.Webhook() {
		m.api.StopReceivingUpdates()
	}
	if m.cancel == nil {
		return nil
	}
	m.running.Store(false)
	m.cancel()

	select {
	case <-m.done:
		m.logger.Info("Bot module stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("bot shutdown interrupted: %w", ctx.Err())
	}
}

// Health reports whether the Telegram client is connected.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.api == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "telegram client not initialized",
		}
	}

	mode := "polling"
	if m.Webhook() {
		mode = "webhook"
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"username": m.api.Self.UserName,
			"mode":     mode,
		},
	}
}

// process answers a single update. Failures are logged and never stop the loop.
func (m *Module) process(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	log := m.logger.With("request_id", uuid.NewString(), "update_id", update.UpdateID)

	switch {
	case update.Message != nil:
		msg := update.Message
		if !msg.IsCommand() || msg.From == nil {
			return
		}
		log.Debug("Handling command", "command", msg.Command(), "user_id", msg.From.ID)

		reply := m.handler.HandleCommand(ctx, msg.From.ID, msg.Command(), msg.CommandArguments())
		if err := deliver(m.sender, msg.Chat.ID, 0, reply); err != nil {
			log.Error("Failed to deliver reply", "command", msg.Command(), "error", err)
		}

	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if _, err := m.sender.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			log.Warn("Failed to answer callback", "error", err)
		}
		if cq.Message == nil || cq.From == nil {
			return
		}
		log.Debug("Handling callback", "data", cq.Data, "user_id", cq.From.ID)

		reply := m.handler.HandleCallback(ctx, cq.From.ID, cq.Data)
		if err := deliver(m.sender, cq.Message.Chat.ID, cq.Message.MessageID, reply); err != nil {
			log.Error("Failed to deliver reply", "callback", cq.Data, "error", err)
		}
	}
}
