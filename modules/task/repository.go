package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/spapas/todo-telegram-bot/domain/task"
	"gorm.io/gorm"
)

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&domain.Task{})
}

// Create inserts a new task and fills in its generated fields.
func (r *Repository) Create(ctx context.Context, t *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task owned by userID.
func (r *Repository) FindByID(ctx context.Context, userID, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).First(&t, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// List returns the user's tasks that match filter, ordered by id.
// The completed flag is pushed down to the query; the text and tag
// constraints are evaluated by filter.Matches.
func (r *Repository) List(ctx context.Context, userID int64, filter domain.Filter) ([]*domain.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !filter.ShowCompleted {
		query = query.Where("completed = ?", false)
	}

	var tasks []*domain.Task
	if err := query.Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	matched := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// Update overwrites the supplied fields of a task and returns the stored result.
func (r *Repository) Update(ctx context.Context, userID, id int64, changes domain.Changes) (*domain.Task, error) {
	cols := changes.Columns()
	if len(cols) == 0 {
		return r.FindByID(ctx, userID, id)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(cols)
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, userID, id)
}

// Complete marks a task as completed. The returned flag is false when the
// task was already completed, in which case nothing is written.
func (r *Repository) Complete(ctx context.Context, userID, id int64, at time.Time) (*domain.Task, bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ? AND completed = ?", id, userID, false).
		Updates(map[string]any{
			"completed":    true,
			"completed_at": at,
		})
	if err := result.Error; err != nil {
		return nil, false, fmt.Errorf("failed to complete task: %w", err)
	}

	t, err := r.FindByID(ctx, userID, id)
	if err != nil {
		return nil, false, err
	}
	return t, result.RowsAffected > 0, nil
}
