package views

import (
	"fmt"

	"github.com/dmitrijs2005/learnify/internal/filex"
	"github.com/xuri/excelize/v2"
)

const (
	UsersSheet    = "Users"
	MessagesSheet = "Messages"
)

var (
	usersHeader    = []any{"User", "Completed Tutorials", "Quiz", "Messages"}
	messagesHeader = []any{"User", "Name", "Email", "Message", "At"}
)

// ExportAdminXLSX writes the admin tables to an .xlsx workbook at path.
func ExportAdminXLSX(v AdminView, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", UsersSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(MessagesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	users := [][]any{usersHeader}
	for _, u := range v.Users {
		users = append(users, []any{u.Username, u.Completed, u.Quiz, u.Messages})
	}
	if err := writeRows(f, UsersSheet, users); err != nil {
		return err
	}

	messages := [][]any{messagesHeader}
	for _, m := range v.Messages {
		messages = append(messages, []any{m.User, m.Name, m.Email, m.Message, m.At})
	}
	if err := writeRows(f, MessagesSheet, messages); err != nil {
		return err
	}

	if err := filex.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
