package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-monolith/mono"
	domain "github.com/spapas/todo-telegram-bot/domain/task"
	"github.com/spapas/todo-telegram-bot/events"
)

// addTask handles the add-task service request.
func (m *TaskModule) addTask(ctx context.Context, req AddTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	desc := strings.TrimSpace(req.Draft.Description)
	if desc == "" {
		return TaskResponse{}, fmt.Errorf("description is required")
	}

	t := &domain.Task{
		UserID:      req.UserID,
		Description: desc,
		Who:         req.Draft.Who,
		Category:    req.Draft.Category,
		Tags:        domain.JoinTags(req.Draft.Tags),
	}
	if err := m.repo.Create(ctx, t); err != nil {
		return TaskResponse{}, err
	}

	m.publish(func() error {
		return events.TaskAddedV1.Publish(m.eventBus, events.TaskAddedEvent{
			TaskID:      t.ID,
			UserID:      t.UserID,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		}, nil)
	}, "TaskAdded", t.ID)

	return TaskResponse{Task: *t}, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.repo.List(ctx, req.UserID, req.Filter)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]domain.Task, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, *t)
	}
	return response, nil
}

// completeTask handles the complete-task service request.
func (m *TaskModule) completeTask(ctx context.Context, req CompleteTaskRequest, _ *mono.Msg) (CompleteTaskResponse, error) {
	t, changed, err := m.repo.Complete(ctx, req.UserID, req.TaskID, time.Now())
	if errors.Is(err, domain.ErrNotFound) {
		return CompleteTaskResponse{Found: false}, nil
	}
	if err != nil {
		return CompleteTaskResponse{}, err
	}

	if changed {
		completedAt := time.Now()
		if t.CompletedAt != nil {
			completedAt = *t.CompletedAt
		}
		m.publish(func() error {
			return events.TaskCompletedV1.Publish(m.eventBus, events.TaskCompletedEvent{
				TaskID:      t.ID,
				UserID:      t.UserID,
				CompletedAt: completedAt,
			}, nil)
		}, "TaskCompleted", t.ID)
	}

	return CompleteTaskResponse{Found: true, Changed: changed, Task: t}, nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	if req.Changes.IsEmpty() {
		return UpdateTaskResponse{}, fmt.Errorf("no fields to update")
	}
	if req.Changes.Description != nil && strings.TrimSpace(*req.Changes.Description) == "" {
		return UpdateTaskResponse{}, fmt.Errorf("description cannot be empty")
	}

	t, err := m.repo.Update(ctx, req.UserID, req.TaskID, req.Changes)
	if errors.Is(err, domain.ErrNotFound) {
		return UpdateTaskResponse{Found: false}, nil
	}
	if err != nil {
		return UpdateTaskResponse{}, err
	}

	fields := make([]string, 0, 4)
	for col := range req.Changes.Columns() {
		fields = append(fields, col)
	}
	sort.Strings(fields)

	m.publish(func() error {
		return events.TaskUpdatedV1.Publish(m.eventBus, events.TaskUpdatedEvent{
			TaskID:    t.ID,
			UserID:    t.UserID,
			Fields:    fields,
			UpdatedAt: t.UpdatedAt,
		}, nil)
	}, "TaskUpdated", t.ID)

	return UpdateTaskResponse{Found: true, Task: t}, nil
}

// publish emits an event on a best-effort basis; failures are logged only.
func (m *TaskModule) publish(emit func() error, event string, taskID int64) {
	if m.eventBus == nil {
		return
	}
	if err := emit(); err != nil {
		m.logger.Warn("Failed to publish event", "event", event, "task_id", taskID, "error", err)
	}
}
