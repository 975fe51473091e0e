// Package report renders task lists into downloadable spreadsheets.
package report

import (
	"fmt"
	"time"

	domain "github.com/spapas/todo-telegram-bot/domain/task"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the worksheet holding the tasks.
const SheetName = "Tasks"

// Filename is the suggested file name for the exported workbook.
const Filename = "tasks.xlsx"

// TimeLayout is used for every timestamp written to the sheet.
const TimeLayout = "2006-01-02 15:04:05"

// Header is the first row of the sheet.
var Header = []any{"ID", "Task", "Who", "Category", "Tags", "Created At", "Updated At", "Completed At"}

// Workbook renders tasks into an xlsx document, one row per task.
func Workbook(tasks []domain.Task) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, t := range tasks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			t.ID,
			t.Description,
			t.Who,
			t.Category,
			t.Tags,
			formatTime(t.CreatedAt),
			formatTime(t.UpdatedAt),
			formatTimePtr(t.CompletedAt),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write task %d: %w", t.ID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
