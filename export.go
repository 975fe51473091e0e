package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spapas/todo-telegram-bot/config"
	domain "github.com/spapas/todo-telegram-bot/domain/task"
	"github.com/spapas/todo-telegram-bot/modules/task"
	"github.com/spapas/todo-telegram-bot/report"
	"github.com/spf13/cobra"
)

var (
	exportUser int64
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a user's tasks to a spreadsheet",
	Long: `Export reads the task database directly, without starting the bot,
and writes every task of one user (completed included) to an xlsx file.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Int64VarP(&exportUser, "user", "u", 0, "Telegram user id whose tasks are exported")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", report.Filename, "Output file")
	_ = exportCmd.MarkFlagRequired("user")
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	n, err := exportTasks(cmd.Context(), cfg.Database.Path, exportUser, exportOut)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks to download.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", n, exportOut)
	return nil
}

// exportTasks writes userID's tasks from the database at dbPath to out and
// returns how many were written. Nothing is written when the user has no tasks.
func exportTasks(ctx context.Context, dbPath string, userID int64, out string) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := task.OpenDatabase(dbPath, false)
	if err != nil {
		return 0, err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	found, err := task.NewRepository(db).List(ctx, userID, domain.All())
	if err != nil {
		return 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(found) == 0 {
		return 0, nil
	}

	tasks := make([]domain.Task, len(found))
	for i, t := range found {
		tasks[i] = *t
	}

	data, err := report.Workbook(tasks)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	return len(tasks), nil
}
