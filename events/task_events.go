package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskAddedEvent is emitted when a new task is added.
type TaskAddedEvent struct {
	TaskID      int64     `json:"task_id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskAddedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-added
var TaskAddedV1 = helper.EventDefinition[TaskAddedEvent](
	"task", "TaskAdded", "v1",
)

// TaskUpdatedEvent is emitted when task fields are changed.
type TaskUpdatedEvent struct {
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	Fields    []string  `json:"fields"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskUpdatedV1 is the typed event definition for task updates.
// Subject: events.task.v1.task-updated
var TaskUpdatedV1 = helper.EventDefinition[TaskUpdatedEvent](
	"task", "TaskUpdated", "v1",
)

// TaskCompletedEvent is emitted when a task is marked complete.
type TaskCompletedEvent struct {
	TaskID      int64     `json:"task_id"`
	UserID      int64     `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskCompletedV1 is the typed event definition for task completion.
// Subject: events.task.v1.task-completed
var TaskCompletedV1 = helper.EventDefinition[TaskCompletedEvent](
	"task", "TaskCompleted", "v1",
)
