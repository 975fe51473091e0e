package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Matches(t *testing.T) {
	open := &Task{ID: 1, Description: "Buy Milk", Who: "Alice", Category: "Errand", Tags: "grocery,Food"}
	done := &Task{ID: 2, Description: "File taxes", Who: "bob", Category: "admin", Completed: true}

	tests := []struct {
		name   string
		filter Filter
		task   *Task
		want   bool
	}{
		{name: "empty filter matches open task", filter: Filter{}, task: open, want: true},
		{name: "empty filter hides completed", filter: Filter{}, task: done, want: false},
		{name: "show completed", filter: Filter{ShowCompleted: true}, task: done, want: true},
		{name: "show completed keeps open tasks", filter: Filter{ShowCompleted: true}, task: open, want: true},
		{name: "task substring ignores case", filter: Filter{Task: "milk"}, task: open, want: true},
		{name: "task substring miss", filter: Filter{Task: "bread"}, task: open, want: false},
		{name: "who exact", filter: Filter{Who: "Alice"}, task: open, want: true},
		{name: "who substring", filter: Filter{Who: "ali"}, task: open, want: true},
		{name: "category miss", filter: Filter{Category: "work"}, task: open, want: false},
		{name: "any tag overlaps", filter: Filter{Tags: []string{"urgent", "food"}}, task: open, want: true},
		{name: "no tag overlap", filter: Filter{Tags: []string{"urgent"}}, task: open, want: false},
		{name: "tags on untagged task", filter: Filter{Tags: []string{"x"}}, task: done, want: false},
		{name: "all constraints hold", filter: Filter{Task: "buy", Who: "alice", Category: "err", Tags: []string{"grocery"}}, task: open, want: true},
		{name: "one constraint fails", filter: Filter{Task: "buy", Who: "bob"}, task: open, want: false},
		{name: "completed still filtered by fields", filter: Filter{ShowCompleted: true, Who: "alice"}, task: done, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.task))
		})
	}
}

func TestFilter_DefaultHidesCompleted(t *testing.T) {
	tasks := []*Task{
		{ID: 1, Description: "a"},
		{ID: 2, Description: "b", Completed: true},
		{ID: 3, Description: "c", Completed: true},
		{ID: 4, Description: "d"},
	}

	def := ParseList("")
	all := ParseList("show_completed=1")
	for _, task := range tasks {
		assert.Equal(t, !task.Completed, def.Matches(task), "default, task %d", task.ID)
		assert.True(t, all.Matches(task), "show_completed, task %d", task.ID)
	}
}
