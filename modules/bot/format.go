package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	domain "github.com/spapas/todo-telegram-bot/domain/task"
	"github.com/spapas/todo-telegram-bot/report"
)

const (
	statusDone = "✅"
	statusOpen = "❌"
)

// FormatTasks renders tasks as Telegram HTML, one line per task.
func FormatTasks(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return MsgNoTasks
	}

	lines := make([]string, 0, len(tasks))
	for i := range tasks {
		lines = append(lines, formatTask(&tasks[i]))
	}
	return strings.Join(lines, "\n")
}

func formatTask(t *domain.Task) string {
	status := statusOpen
	if t.Completed {
		status = statusDone
	}

	updated := "-"
	if !t.UpdatedAt.IsZero() && !t.UpdatedAt.Equal(t.CreatedAt) {
		updated = t.UpdatedAt.Format(report.TimeLayout)
	}

	return fmt.Sprintf(
		"<b>%d.</b> %s | who: %s | category: %s | tags: %s | created: %s | updated: %s | completed: %s | %s",
		t.ID,
		html.EscapeString(t.Description),
		escapeOrDash(t.Who),
		escapeOrDash(t.Category),
		escapeOrDash(t.Tags),
		formatTime(t.CreatedAt),
		updated,
		formatTimePtr(t.CompletedAt),
		status,
	)
}

func escapeOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return html.EscapeString(s)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(report.TimeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}
