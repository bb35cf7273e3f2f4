package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/sandeepkv93/tasklist/internal/model"
)

type RowData struct {
	ID        string
	Text      string
	Completed bool
	Selected  bool
	Editing   bool
	// EditView is the rendered text input shown in place of Text while editing.
	EditView string
}

type ListPanelData struct {
	Filter model.Filter
	Rows   []RowData
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func EmptyStateMessage(f model.Filter) string {
	switch f {
	case model.FilterPending:
		return "No pending tasks!"
	case model.FilterCompleted:
		return "No completed tasks!"
	default:
		return "Your list is empty!"
	}
}

func RenderListPanel(data ListPanelData) string {
	if len(data.Rows) == 0 {
		return EmptyStateMessage(data.Filter) + "\n" + mutedStyle.Render("Add a new task to get started")
	}
	var b strings.Builder
	for _, row := range data.Rows {
		b.WriteString(RenderTaskRow(row))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTaskRow(row RowData) string {
	cursor := "  "
	if row.Selected {
		cursor = cursorStyle.Render("> ")
	}
	if row.Editing {
		return cursor + row.EditView + mutedStyle.Render("  [enter]save [esc]cancel")
	}
	text := SanitizeTerminal(row.Text)
	if row.Completed {
		text = completedStyle.Render(text)
	}
	return fmt.Sprintf("%s%s %s %s", cursor, checkbox(row.Completed), text, mutedStyle.Render(ShortID(row.ID)))
}

func RenderFilterBar(active model.Filter) string {
	parts := make([]string, 0, len(model.Filters))
	for i, f := range model.Filters {
		label := fmt.Sprintf("[%d] %s", i+1, filterLabel(f))
		if f == active {
			label = activeStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func RenderStats(stats model.Statistics, bar string) string {
	line := fmt.Sprintf("%s · %s", CountLabel(stats.Total, "task", "tasks"), CountLabel(stats.Completed, "completed", "completed"))
	if bar != "" {
		line += "  " + bar
	}
	clearHint := "[C] clear completed"
	if !stats.ClearEnabled() {
		clearHint = mutedStyle.Render(clearHint + " (nothing to clear)")
	}
	return line + "\n" + clearHint
}

func RenderConfirm(prompt string) string {
	if prompt == "" {
		return ""
	}
	return confirmStyle.Render(prompt + "  [y]es / [n]o")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}

func CountLabel(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// ShortID returns the first eight cells of id with control sequences
// stripped, enough to address a task from the command line.
func ShortID(id string) string {
	return ansi.Truncate(SanitizeTerminal(id), 8, "")
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func filterLabel(f model.Filter) string {
	switch f {
	case model.FilterPending:
		return "Pending"
	case model.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
