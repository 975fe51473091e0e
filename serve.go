package main

import (
	"context"
	"fmt"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/spapas/todo-telegram-bot/config"
	"github.com/spapas/todo-telegram-bot/modules/activity"
	"github.com/spapas/todo-telegram-bot/modules/bot"
	"github.com/spapas/todo-telegram-bot/modules/httpserver"
	"github.com/spapas/todo-telegram-bot/modules/task"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("=== Todo Telegram Bot ===")

	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == config.LogLevelError {
		logLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	logger := app.Logger()

	taskModule := task.NewModule(cfg.Database.Path, cfg.Database.Debug, logger)
	activityModule := activity.NewModule(cfg.Activity.Capacity, logger)
	botModule := bot.NewModule(bot.Options{
		Token:         cfg.Telegram.Token,
		WebhookURL:    cfg.Telegram.WebhookURL,
		WebhookSecret: cfg.Telegram.WebhookSecret,
	}, logger)

	webhookSecret := ""
	if botModule.Webhook() {
		webhookSecret = cfg.Telegram.WebhookSecret
	}
	httpModule := httpserver.NewModule(cfg.HTTP.Port, webhookSecret, logger)

	// Wire up dependencies
	httpModule.SetActivityFeed(activityModule)
	httpModule.AddHealthCheck("task", taskModule)
	httpModule.AddHealthCheck("bot", botModule)
	if botModule.Webhook() {
		httpModule.SetUpdateSink(botModule)
	}

	// Order: independent modules first, then modules with dependencies
	app.Register(taskModule)     // Core domain (emits task events)
	app.Register(activityModule) // Event consumer
	app.Register(botModule)      // Driving adapter (depends on task)
	app.Register(httpModule)     // Webhook, health and activity endpoints

	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	logger.Info("Application started",
		"http_port", cfg.HTTP.Port,
		"webhook", botModule.Webhook(),
		"database", cfg.Database.Path,
	)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
	return nil
}
