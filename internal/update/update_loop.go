package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/controller"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

// statusTTL is how long a status line stays before it is cleared.
const statusTTL = 2 * time.Second

const emptyInputStatus = "Please type a task!"

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeConfirm:
			return m.handleConfirmKey(typed)
		case ModeAdd:
			return m.handleAddKey(typed)
		case ModeEdit:
			return m.handleEditKey(typed)
		case ModePalette:
			return m.handlePaletteKey(typed)
		}
		return m.handleBrowseKey(typed)
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case SetStatusMsg:
		return m, m.setStatus(typed.Text, typed.IsError)
	case ClearStatusMsg:
		if typed.Seq == 0 || typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		if typed.Err == nil {
			return m, nil
		}
		return m, m.reportErr(typed.Err)
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Add, "i", "enter":
		m.Mode = ModeAdd
		return m, m.addInput.Focus()
	case "j", "down":
		m.Cursor++
		m.clamp()
	case "k", "up":
		m.Cursor--
		m.clamp()
	case m.Keys.Toggle, "x":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if _, err := m.ctl.Toggle(m.ctx, task.ID); err != nil {
			return m, m.reportErr(err)
		}
		m.clamp()
	case m.Keys.Edit:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.ctl.BeginEdit(task.ID); err != nil {
			return m, m.reportErr(err)
		}
		m.Mode = ModeEdit
		m.editInput.SetValue(task.Text)
		m.editInput.CursorEnd()
		return m, m.editInput.Focus()
	case m.Keys.Delete:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if _, err := m.ctl.RequestDelete(task.ID); err != nil {
			return m, m.reportErr(err)
		}
		m.Mode = ModeConfirm
	case m.Keys.ClearCompleted:
		p, err := m.ctl.RequestClearCompleted()
		if err != nil {
			return m, m.reportErr(err)
		}
		if p == nil {
			return m, m.setStatus("no completed tasks to clear", false)
		}
		m.Mode = ModeConfirm
	case "1", "2", "3":
		f := model.Filters[int(msg.String()[0]-'1')]
		return m, m.applyFilter(f)
	case m.Keys.NextFilter:
		return m, m.applyFilter(m.ctl.Filter().Next())
	case "/":
		m.Mode = ModePalette
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		return m, m.commandInput.Focus()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.addInput.Blur()
		m.addInput.SetValue("")
		m.Mode = ModeBrowse
		return m, nil
	case tea.KeyEnter:
		task, err := m.ctl.Add(m.ctx, m.addInput.Value())
		if err != nil && !errors.Is(err, controller.ErrPersist) {
			return m, m.reportErr(err)
		}
		m.addInput.SetValue("")
		m.Cursor = 0
		m.clamp()
		if err != nil {
			return m, m.reportErr(err)
		}
		return m, m.setStatus(fmt.Sprintf("added %s", views.ShortID(task.ID)), false)
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editInput.Blur()
		m.Mode = ModeBrowse
		if err := m.ctl.CancelEdit(); err != nil {
			return m, m.reportErr(err)
		}
		return m, nil
	case tea.KeyEnter:
		m.editInput.Blur()
		m.Mode = ModeBrowse
		err := m.ctl.CommitEdit(m.ctx, m.ctl.EditingID(), m.editInput.Value())
		m.clamp()
		if err != nil {
			return m, m.reportErr(err)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var confirmed bool
	switch msg.String() {
	case "y", "Y", "enter":
		confirmed = true
	case "n", "N", "esc":
	default:
		return m, nil
	}
	m.Mode = ModeBrowse
	removed, err := m.ctl.Resolve(m.ctx, confirmed)
	m.clamp()
	if err != nil {
		return m, m.reportErr(err)
	}
	if !confirmed {
		return m, m.setStatus("cancelled", false)
	}
	return m, m.setStatus(fmt.Sprintf("deleted %s", views.CountLabel(removed, "task", "tasks")), false)
}

func (m *Model) applyFilter(f model.Filter) tea.Cmd {
	if err := m.ctl.SetFilter(f); err != nil {
		return m.reportErr(err)
	}
	m.Cursor = 0
	return nil
}

// setStatus shows text on the status line and schedules its removal.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: isErr}
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}

func (m *Model) reportErr(err error) tea.Cmd {
	m.LastError = err
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr) && verr.Code == model.ErrCodeEmptyInput:
		return m.setStatus(emptyInputStatus, true)
	case errors.Is(err, controller.ErrConfirmationPending):
		return m.setStatus("answer the confirmation first", true)
	}
	if !model.IsValidation(err) {
		m.logger.Printf("error: %v", err)
	}
	return m.setStatus(err.Error(), true)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	snap := m.ctl.Snapshot()
	cursor := clampCursor(m.Cursor, len(snap.View))

	rows := make([]views.RowData, 0, len(snap.View))
	for i, t := range snap.View {
		row := views.RowData{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Selected:  i == cursor && m.Mode != ModeAdd,
			Editing:   snap.Editing(t.ID),
		}
		if row.Editing {
			row.EditView = m.editInput.View()
		}
		rows = append(rows, row)
	}

	input := m.addInput.View()
	if m.Mode == ModePalette {
		input = views.RenderCommandPalette(true, m.commandInput.View())
	}

	ratio := 0.0
	if snap.Stats.Total > 0 {
		ratio = float64(snap.Stats.Completed) / float64(snap.Stats.Total)
	}

	overlay := views.RenderConfirm(snap.Prompt)
	if m.HelpVisible {
		if overlay != "" {
			overlay += "\n"
		}
		overlay += m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("tasklist | %s", m.Mode),
		FilterBar:  views.RenderFilterBar(snap.Filter),
		Input:      input,
		Body:       views.RenderListPanel(views.ListPanelData{Filter: snap.Filter, Rows: rows}),
		Stats:      views.RenderStats(snap.Stats, m.completion.ViewAs(ratio)),
		StatusLine: m.Status.Text,
		StatusErr:  m.Status.IsError,
		Overlay:    overlay,
		Footer:     m.helpModel.View(helpKeyMap{short: m.shortBindings()}),
	})
}
