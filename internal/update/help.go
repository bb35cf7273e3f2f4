package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklist/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const paletteMarkdown = `## Commands

Press **/** and type one of:

- ` + "`add <text>`" + ` adds a task
- ` + "`filter all|pending|completed`" + ` changes the view
- ` + "`edit <text>`" + ` replaces the selected task's text
- ` + "`done`" + ` toggles the selected task
- ` + "`clear`" + ` removes completed tasks after confirmation
`

func renderPaletteDoc() string {
	return views.RenderMarkdown(paletteMarkdown)
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	full := m.helpModel
	full.ShowAll = true
	keys := helpKeyMap{full: [][]key.Binding{toKeyBindings(m.globalBindings())}}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: full.View(keys) + "\n" + m.paletteDoc,
	})
}

func (m Model) shortBindings() []key.Binding {
	switch m.Mode {
	case ModeAdd, ModeEdit, ModePalette:
		return toKeyBindings([]KeyBinding{
			{Key: "enter", Action: "save"},
			{Key: "esc", Action: "cancel"},
		})
	case ModeConfirm:
		return toKeyBindings([]KeyBinding{
			{Key: "y", Action: "yes"},
			{Key: "n", Action: "no"},
		})
	}
	return toKeyBindings(m.globalBindings())
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add, Action: "add"},
		{Key: "space", Action: "toggle"},
		{Key: m.Keys.Edit, Action: "edit"},
		{Key: m.Keys.Delete, Action: "delete"},
		{Key: m.Keys.ClearCompleted, Action: "clear completed"},
		{Key: m.Keys.NextFilter, Action: "next filter"},
		{Key: "/", Action: "commands"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeAdd:
		return []KeyBinding{
			{Key: "enter", Action: "add the typed task"},
			{Key: "esc", Action: "leave the input"},
		}
	case ModeEdit:
		return []KeyBinding{
			{Key: "enter", Action: "save (empty text cancels)"},
			{Key: "esc", Action: "cancel edit"},
		}
	case ModeConfirm:
		return []KeyBinding{
			{Key: "y/enter", Action: "confirm"},
			{Key: "n/esc", Action: "keep tasks"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space/x", Action: "toggle completed"},
			{Key: "1/2/3", Action: "all / pending / completed"},
		}
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
