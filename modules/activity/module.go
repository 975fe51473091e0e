package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/spapas/todo-telegram-bot/events"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 100

// Entry types.
const (
	TypeTaskAdded     = "task_added"
	TypeTaskUpdated   = "task_updated"
	TypeTaskCompleted = "task_completed"
)

// Entry is one recorded task event. Task contents are not retained.
type Entry struct {
	Type      string    `json:"type"`
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	Fields    []string  `json:"fields,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Module consumes task events and keeps a bounded feed of recent activity.
type Module struct {
	entries  []Entry
	capacity int
	mu       sync.RWMutex
	logger   types.Logger
}

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates an activity Module keeping at most capacity entries.
func NewModule(capacity int, logger types.Logger) *Module {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Module{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		logger:   logger.WithModule("activity"),
	}
}

func (m *Module) Name() string {
	return "activity"
}

func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskAddedV1, m.handleTaskAdded, m); err != nil {
		return fmt.Errorf("failed to register TaskAdded consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"TaskAdded", "TaskUpdated", "TaskCompleted"})
	return nil
}

func (m *Module) handleTaskAdded(_ context.Context, event events.TaskAddedEvent, _ *mono.Msg) error {
	m.logger.Info("Task added", "task_id", event.TaskID, "user_id", event.UserID)
	m.record(Entry{
		Type:      TypeTaskAdded,
		TaskID:    event.TaskID,
		UserID:    event.UserID,
		Timestamp: event.CreatedAt,
	})
	return nil
}

func (m *Module) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.logger.Info("Task updated", "task_id", event.TaskID, "user_id", event.UserID, "fields", event.Fields)
	m.record(Entry{
		Type:      TypeTaskUpdated,
		TaskID:    event.TaskID,
		UserID:    event.UserID,
		Fields:    event.Fields,
		Timestamp: event.UpdatedAt,
	})
	return nil
}

func (m *Module) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.logger.Info("Task completed", "task_id", event.TaskID, "user_id", event.UserID)
	m.record(Entry{
		Type:      TypeTaskCompleted,
		TaskID:    event.TaskID,
		UserID:    event.UserID,
		Timestamp: event.CompletedAt,
	})
	return nil
}

// record appends e, dropping the oldest entry once the feed is full.
func (m *Module) record(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == m.capacity {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:len(m.entries)-1]
	}
	m.entries = append(m.entries, e)
}

// Recent returns the recorded entries, newest first.
func (m *Module) Recent() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		result[len(m.entries)-1-i] = e
	}
	return result
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Activity module started, listening for task events")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped")
	return nil
}
