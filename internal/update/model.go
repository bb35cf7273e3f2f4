package update

import (
	"context"
	"io"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tasklist/internal/controller"
	"github.com/sandeepkv93/tasklist/internal/model"
)

type Mode string

const (
	ModeBrowse  Mode = "browse"
	ModeAdd     Mode = "add"
	ModeEdit    Mode = "edit"
	ModeConfirm Mode = "confirm"
	ModePalette Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add            string
	Toggle         string
	Edit           string
	Delete         string
	ClearCompleted string
	NextFilter     string
	Help           string
	Quit           string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	ctl    *controller.Controller
	ctx    context.Context
	logger *log.Logger

	Mode        Mode
	Cursor      int
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	// statusSeq identifies the status a pending ClearStatusMsg belongs to.
	statusSeq int

	addInput     textinput.Model
	editInput    textinput.Model
	commandInput textinput.Model
	completion   progress.Model
	helpModel    help.Model
	paletteDoc   string
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct {
	Seq int
}

type AppErrorMsg struct {
	Err error
}

// NewModel builds the interactive list on top of ctl. ctx is used for every
// store write the model triggers.
func NewModel(ctx context.Context, ctl *controller.Controller, logger *log.Logger) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := Model{
		ctl:    ctl,
		ctx:    ctx,
		logger: logger,
		Mode:   ModeBrowse,
		Keys: GlobalKeyMap{
			Add:            "a",
			Toggle:         " ",
			Edit:           "e",
			Delete:         "d",
			ClearCompleted: "C",
			NextFilter:     "f",
			Help:           "?",
			Quit:           "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Placeholder = "What needs to be done?"
	m.addInput.Prompt = "+ "
	m.addInput.CharLimit = model.MaxTextLength

	m.editInput = textinput.New()
	m.editInput.Prompt = ""
	m.editInput.CharLimit = model.MaxTextLength

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ""
	m.commandInput.Placeholder = "add <text> | filter <name> | edit <text> | done | clear"

	m.completion = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())
	m.helpModel = help.New()
	m.paletteDoc = renderPaletteDoc()
}

// selected returns the task under the cursor in the filtered view.
func (m Model) selected() (model.Task, bool) {
	view := m.ctl.FilteredView()
	if len(view) == 0 {
		return model.Task{}, false
	}
	return view[clampCursor(m.Cursor, len(view))], true
}

func (m *Model) clamp() {
	m.Cursor = clampCursor(m.Cursor, len(m.ctl.FilteredView()))
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
