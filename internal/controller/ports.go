package controller

import "github.com/sandeepkv93/tasklist/internal/model"

// Confirmer asks the user a yes/no question before a destructive action.
type Confirmer interface {
	Ask(message string) bool
}

type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Ask(message string) bool { return f(message) }

var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(string) bool { return false })
)

// Renderer is notified after every state change that affects what is shown.
type Renderer interface {
	Render(Snapshot)
}

type RenderFunc func(Snapshot)

func (f RenderFunc) Render(s Snapshot) { f(s) }

type nopRenderer struct{}

func (nopRenderer) Render(Snapshot) {}

// Snapshot is the read-only state handed to renderers.
type Snapshot struct {
	View      []model.Task
	Filter    model.Filter
	EditingID string
	Stats     model.Statistics
	// Prompt is the pending confirmation question, if any.
	Prompt string
}

func (s Snapshot) Editing(id string) bool {
	return s.EditingID != "" && s.EditingID == id
}
