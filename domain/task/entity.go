package task

import "time"

// Task is a single entry in a user's todo list.
type Task struct {
	ID          int64      `gorm:"primarykey" json:"id"`
	UserID      int64      `gorm:"index;not null" json:"user_id"`
	Description string     `gorm:"not null" json:"description"`
	Who         string     `json:"who"`
	Category    string     `json:"category"`
	Tags        string     `json:"tags"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

// TagList returns the task's tags as a slice.
func (t *Task) TagList() []string {
	return ParseTags(t.Tags)
}

// Draft holds the fields of a task that is about to be created.
type Draft struct {
	Description string   `json:"description"`
	Who         string   `json:"who,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Changes describes a partial update. A nil field is left untouched.
type Changes struct {
	Description *string   `json:"description,omitempty"`
	Who         *string   `json:"who,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (c Changes) IsEmpty() bool {
	return c.Description == nil && c.Who == nil && c.Category == nil && c.Tags == nil
}

// Columns maps the supplied fields to their column values.
func (c Changes) Columns() map[string]any {
	cols := make(map[string]any, 4)
	if c.Description != nil {
		cols["description"] = *c.Description
	}
	if c.Who != nil {
		cols["who"] = *c.Who
	}
	if c.Category != nil {
		cols["category"] = *c.Category
	}
	if c.Tags != nil {
		cols["tags"] = JoinTags(*c.Tags)
	}
	return cols
}
