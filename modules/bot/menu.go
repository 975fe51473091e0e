package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data sent by the main menu buttons.
const (
	CallbackAdd      = "menu_add"
	CallbackList     = "menu_list"
	CallbackDone     = "menu_done"
	CallbackDownload = "menu_download"
	CallbackHelp     = "menu_help"
)

// Hints shown when a menu button needs arguments the keyboard cannot carry.
const (
	HintAdd  = "Use /add <task description> [who=..., category=..., tags=...]"
	HintDone = "Use /done <task_id> to mark a task as completed."
	HintHelp = "Use /help to see all commands."
)

// Commands are registered with Telegram so clients can autocomplete them.
var Commands = []tgbotapi.BotCommand{
	{Command: "add", Description: "Add a new task"},
	{Command: "list", Description: "List tasks with optional filters"},
	{Command: "done", Description: "Mark a task as completed"},
	{Command: "update", Description: "Update a task"},
	{Command: "download", Description: "Download tasks as a spreadsheet"},
	{Command: "menu", Description: "Open main menu"},
	{Command: "help", Description: "Show help"},
}

func mainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Task", CallbackAdd),
			tgbotapi.NewInlineKeyboardButtonData("📋 List Tasks", CallbackList),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Done Task", CallbackDone),
			tgbotapi.NewInlineKeyboardButtonData("📥 Download", CallbackDownload),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", CallbackHelp),
		),
	)
}

// HandleCallback answers a main menu button press. Unknown data yields an
// empty reply, which is not delivered.
func (h *Handler) HandleCallback(ctx context.Context, userID int64, data string) Reply {
	switch data {
	case CallbackAdd:
		return Reply{Text: HintAdd, Edit: true}
	case CallbackList:
		reply := h.list(ctx, userID, "")
		reply.Edit = true
		return reply
	case CallbackDone:
		return Reply{Text: HintDone, Edit: true}
	case CallbackDownload:
		return h.download(ctx, userID)
	case CallbackHelp:
		return Reply{Text: HintHelp, Edit: true}
	default:
		h.logger.Debug("Ignoring unknown callback", "data", data, "user_id", userID)
		return Reply{}
	}
}
