package bot

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono/pkg/types"
	domain "github.com/spapas/todo-telegram-bot/domain/task"
	"github.com/spapas/todo-telegram-bot/modules/task"
	"github.com/spapas/todo-telegram-bot/report"
)

// Reply texts.
const (
	MsgUnknownCommand = "Unknown command. Use /help to see all commands."
	MsgInternalError  = "Something went wrong, please try again later."
	MsgNoTasks        = "No tasks found."
	MsgNoDownload     = "No tasks to download."
	MsgDownloadReady  = "📥 Here are your tasks."
	MsgMenu           = "📌 Main Menu: choose an action"
)

// HelpText is the static usage text returned by /help.
const HelpText = `Todo Bot Commands:

/add <task description> [who=..., category=..., tags=...] - Add a new task.
/list [task=..., who=..., category=..., tags=..., show_completed=1] - List tasks.
/done <task_id> - Mark a task as completed.
/update <task_id> <new task description> [who=..., category=..., tags=...] - Update task.
/download - Download your tasks as a spreadsheet.
/menu - Open main menu.
/start - Show menu.
/help - Show this help.`

// Reply is the transport-independent answer to a command or callback.
type Reply struct {
	Text     string
	HTML     bool
	Menu     bool
	Edit     bool
	Document *Document
}

// Document is a file attached to a reply.
type Document struct {
	Name    string
	Data    []byte
	Caption string
}

// Handler turns chat commands into task operations and replies.
// Every error is converted into a reply; none escape.
type Handler struct {
	tasks  task.TaskPort
	logger types.Logger
}

// NewHandler creates a Handler that stores tasks through tasks.
func NewHandler(tasks task.TaskPort, logger types.Logger) *Handler {
	return &Handler{tasks: tasks, logger: logger}
}

// HandleCommand runs command (without the leading slash) for userID.
func (h *Handler) HandleCommand(ctx context.Context, userID int64, command, args string) Reply {
	switch command {
	case "add":
		return h.add(ctx, userID, args)
	case "list":
		return h.list(ctx, userID, args)
	case "done":
		return h.done(ctx, userID, args)
	case "update":
		return h.update(ctx, userID, args)
	case "download":
		return h.download(ctx, userID)
	case "help":
		return Reply{Text: HelpText}
	case "start", "menu":
		return Reply{Text: MsgMenu, Menu: true}
	default:
		return Reply{Text: MsgUnknownCommand}
	}
}

func (h *Handler) add(ctx context.Context, userID int64, args string) Reply {
	draft, err := domain.ParseAdd(args)
	if err != nil {
		return h.fail(err, "add", userID)
	}

	t, err := h.tasks.AddTask(ctx, userID, draft)
	if err != nil {
		return h.fail(err, "add", userID)
	}
	return Reply{Text: fmt.Sprintf("Task %d added: %s", t.ID, t.Description)}
}

func (h *Handler) list(ctx context.Context, userID int64, args string) Reply {
	tasks, err := h.tasks.ListTasks(ctx, userID, domain.ParseList(args))
	if err != nil {
		return h.fail(err, "list", userID)
	}
	return Reply{Text: FormatTasks(tasks), HTML: true}
}

func (h *Handler) done(ctx context.Context, userID int64, args string) Reply {
	id, err := domain.ParseDone(args)
	if err != nil {
		return h.fail(err, "done", userID)
	}

	_, changed, err := h.tasks.CompleteTask(ctx, userID, id)
	if err != nil {
		return h.fail(err, "done", userID)
	}
	if !changed {
		return Reply{Text: fmt.Sprintf("Task %d is already completed.", id)}
	}
	return Reply{Text: fmt.Sprintf("Task %d marked as completed.", id)}
}

func (h *Handler) update(ctx context.Context, userID int64, args string) Reply {
	id, changes, err := domain.ParseUpdate(args)
	if err != nil {
		return h.fail(err, "update", userID)
	}

	if _, err := h.tasks.UpdateTask(ctx, userID, id, changes); err != nil {
		return h.fail(err, "update", userID)
	}
	return Reply{Text: fmt.Sprintf("Task %d updated.", id)}
}

func (h *Handler) download(ctx context.Context, userID int64) Reply {
	tasks, err := h.tasks.ListTasks(ctx, userID, domain.All())
	if err != nil {
		return h.fail(err, "download", userID)
	}
	if len(tasks) == 0 {
		return Reply{Text: MsgNoDownload}
	}

	data, err := report.Workbook(tasks)
	if err != nil {
		return h.fail(err, "download", userID)
	}
	return Reply{Document: &Document{
		Name:    report.Filename,
		Data:    data,
		Caption: MsgDownloadReady,
	}}
}

// fail converts err into a reply. Validation errors are shown verbatim;
// anything else is logged and answered with a generic message.
func (h *Handler) fail(err error, command string, userID int64) Reply {
	if domain.IsValidation(err) {
		return Reply{Text: err.Error()}
	}
	h.logger.Error("Command failed", "command", command, "user_id", userID, "error", err)
	return Reply{Text: MsgInternalError}
}
