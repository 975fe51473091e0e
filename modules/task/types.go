package task

import (
	"context"

	domain "github.com/spapas/todo-telegram-bot/domain/task"
)

// Service names registered by the task module.
const (
	ServiceAddTask      = "add-task"
	ServiceListTasks    = "list-tasks"
	ServiceCompleteTask = "complete-task"
	ServiceUpdateTask   = "update-task"
)

// AddTaskRequest is the request for adding a task.
type AddTaskRequest struct {
	UserID int64        `json:"user_id"`
	Draft  domain.Draft `json:"draft"`
}

// TaskResponse carries a single task.
type TaskResponse struct {
	Task domain.Task `json:"task"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID int64         `json:"user_id"`
	Filter domain.Filter `json:"filter"`
}

// ListTasksResponse is the response containing the matching tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// CompleteTaskRequest is the request for completing a task.
type CompleteTaskRequest struct {
	UserID int64 `json:"user_id"`
	TaskID int64 `json:"task_id"`
}

// CompleteTaskResponse reports the outcome of a completion.
// Changed is false when the task had already been completed.
type CompleteTaskResponse struct {
	Found   bool         `json:"found"`
	Changed bool         `json:"changed"`
	Task    *domain.Task `json:"task,omitempty"`
}

// UpdateTaskRequest is the request for updating a task.
type UpdateTaskRequest struct {
	UserID  int64          `json:"user_id"`
	TaskID  int64          `json:"task_id"`
	Changes domain.Changes `json:"changes"`
}

// UpdateTaskResponse reports the outcome of an update.
type UpdateTaskResponse struct {
	Found bool         `json:"found"`
	Task  *domain.Task `json:"task,omitempty"`
}

// TaskPort is the contract the chat transport uses to reach the task store.
// An unknown task id yields a domain ValidationError wrapping ErrNotFound.
type TaskPort interface {
	AddTask(ctx context.Context, userID int64, draft domain.Draft) (*domain.Task, error)
	ListTasks(ctx context.Context, userID int64, filter domain.Filter) ([]domain.Task, error)
	CompleteTask(ctx context.Context, userID, taskID int64) (*domain.Task, bool, error)
	UpdateTask(ctx context.Context, userID, taskID int64, changes domain.Changes) (*domain.Task, error)
}
