package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	domain "github.com/spapas/todo-telegram-bot/domain/task"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a TaskPort backed by the task module's services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// AddTask creates a task via the add-task service.
func (a *taskAdapter) AddTask(ctx context.Context, userID int64, draft domain.Draft) (*domain.Task, error) {
	req := AddTaskRequest{UserID: userID, Draft: draft}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceAddTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("add-task service call failed: %w", err)
	}
	return &resp.Task, nil
}

// ListTasks returns the user's tasks matching filter via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context, userID int64, filter domain.Filter) ([]domain.Task, error) {
	req := ListTasksRequest{UserID: userID, Filter: filter}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListTasks,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks service call failed: %w", err)
	}
	return resp.Tasks, nil
}

// CompleteTask marks a task as completed via the complete-task service.
func (a *taskAdapter) CompleteTask(ctx context.Context, userID, taskID int64) (*domain.Task, bool, error) {
	req := CompleteTaskRequest{UserID: userID, TaskID: taskID}
	var resp CompleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCompleteTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, false, fmt.Errorf("complete-task service call failed: %w", err)
	}
	if !resp.Found {
		return nil, false, domain.NotFound(taskID)
	}
	return resp.Task, resp.Changed, nil
}

// UpdateTask applies changes via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, userID, taskID int64, changes domain.Changes) (*domain.Task, error) {
	req := UpdateTaskRequest{UserID: userID, TaskID: taskID, Changes: changes}
	var resp UpdateTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdateTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("update-task service call failed: %w", err)
	}
	if !resp.Found {
		return nil, domain.NotFound(taskID)
	}
	return resp.Task, nil
}
