package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePalette()
		return m, nil
	case tea.KeyEnter:
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	if m.Mode == ModePalette {
		m.Mode = ModeBrowse
	}
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		return m, m.reportErr(err)
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if err := model.CheckLength(a.Text); err != nil {
				return commands.Result{}, err
			}
			task, err := m.ctl.Add(m.ctx, a.Text)
			if err != nil {
				return commands.Result{}, err
			}
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("added %s", views.ShortID(task.ID))}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			if err := m.ctl.SetFilterString(f.Name); err != nil {
				return commands.Result{}, err
			}
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("showing %s", m.ctl.Filter())}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			task, ok := m.selected()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			if err := model.CheckLength(e.Text); err != nil {
				return commands.Result{}, err
			}
			if err := m.ctl.BeginEdit(task.ID); err != nil {
				return commands.Result{}, err
			}
			if err := m.ctl.CommitEdit(m.ctx, task.ID, e.Text); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("edited %s", views.ShortID(task.ID))}, nil
		},
		Done: func() (commands.Result, error) {
			task, ok := m.selected()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			if _, err := m.ctl.Toggle(m.ctx, task.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("toggled %s", views.ShortID(task.ID))}, nil
		},
		Clear: func() (commands.Result, error) {
			p, err := m.ctl.RequestClearCompleted()
			if err != nil {
				return commands.Result{}, err
			}
			if p == nil {
				return commands.Result{Message: "no completed tasks to clear"}, nil
			}
			m.Mode = ModeConfirm
			return commands.Result{Message: p.Prompt}, nil
		},
	})
	m.clamp()
	if err != nil {
		return m, m.reportErr(err)
	}
	return m, m.setStatus(res.Message, false)
}
