package update

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/controller"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

func newTestModel(t *testing.T, texts ...string) (Model, *controller.Controller) {
	t.Helper()
	n := 0
	ctl, err := controller.New(t.Context(), storage.NewMemoryStore(),
		controller.WithSeed(false),
		controller.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("task-%03d", n)
		}),
		controller.WithClock(func() time.Time { return time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	for _, text := range texts {
		if _, err := ctl.Add(t.Context(), text); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}
	return NewModel(t.Context(), ctl, nil), ctl
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %q", m.Mode)
	}
	if m.Keys.Quit != "q" || m.Keys.Add != "a" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if m.addInput.CharLimit != model.MaxTextLength || m.editInput.CharLimit != model.MaxTextLength {
		t.Fatalf("expected inputs capped at %d", model.MaxTextLength)
	}
}

func TestAddWithKeyboard(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(t, m, "a", "  Buy milk ", "enter")

	tasks := ctl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if m.addInput.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.addInput.Value())
	}
	if m.Mode != ModeAdd {
		t.Fatalf("expected input to stay focused, got %q", m.Mode)
	}
	if m.Status.IsError || !strings.Contains(m.Status.Text, "added") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestAddInputStopsAtCharLimit(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(t, m, "a", strings.Repeat("z", model.MaxTextLength+20), "enter")

	tasks := ctl.Tasks()
	if len(tasks) != 1 || len([]rune(tasks[0].Text)) != model.MaxTextLength {
		t.Fatalf("expected one task of %d runes, got %+v", model.MaxTextLength, tasks)
	}
}

func TestEmptyAddShowsTransientError(t *testing.T) {
	m, ctl := newTestModel(t)
	m = press(t, m, "a", "   ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if len(ctl.Tasks()) != 0 {
		t.Fatalf("expected no task, got %+v", ctl.Tasks())
	}
	if !m.Status.IsError || m.Status.Text != emptyInputStatus {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if cmd == nil {
		t.Fatal("expected a clear-status tick")
	}

	stale, _ := m.Update(ClearStatusMsg{Seq: m.statusSeq - 1})
	if stale.(Model).Status.Text == "" {
		t.Fatal("stale clear should not remove a newer status")
	}
	cleared, _ := m.Update(ClearStatusMsg{Seq: m.statusSeq})
	if cleared.(Model).Status.Text != "" {
		t.Fatalf("expected status cleared, got %+v", cleared.(Model).Status)
	}
}

func TestQuitKeyIsTextWhileAdding(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "a", "q")
	if m.Quitting {
		t.Fatal("q should be typed into the add input")
	}
	if m.addInput.Value() != "q" {
		t.Fatalf("unexpected input: %q", m.addInput.Value())
	}

	m = press(t, m, "esc", "q")
	if !m.Quitting {
		t.Fatal("expected quit after leaving the input")
	}
}

func TestToggleSelectedTask(t *testing.T) {
	m, ctl := newTestModel(t, "first", "second")
	// second is at the front; move down to first.
	m = press(t, m, "j", "x")

	tasks := ctl.Tasks()
	if tasks[0].Completed || !tasks[1].Completed {
		t.Fatalf("expected only %q toggled: %+v", tasks[1].Text, tasks)
	}

	m = press(t, m, "x")
	if ctl.Statistics().Completed != 0 {
		t.Fatalf("expected toggle back, got %+v", ctl.Statistics())
	}
}

func TestEditCommitAndCancel(t *testing.T) {
	m, ctl := newTestModel(t, "Buy milk")

	m = press(t, m, "e")
	if m.Mode != ModeEdit || ctl.EditingID() != "task-001" {
		t.Fatalf("expected edit mode on task-001, mode=%q editing=%q", m.Mode, ctl.EditingID())
	}
	if m.editInput.Value() != "Buy milk" {
		t.Fatalf("expected edit input prefilled, got %q", m.editInput.Value())
	}

	m = press(t, m, " today", "enter")
	if got := ctl.Tasks()[0].Text; got != "Buy milk today" {
		t.Fatalf("unexpected text after commit: %q", got)
	}
	if m.Mode != ModeBrowse || ctl.EditingID() != "" {
		t.Fatalf("expected edit closed, mode=%q editing=%q", m.Mode, ctl.EditingID())
	}

	m = press(t, m, "e", " later", "esc")
	if got := ctl.Tasks()[0].Text; got != "Buy milk today" {
		t.Fatalf("cancel should keep text, got %q", got)
	}
	if ctl.EditingID() != "" {
		t.Fatal("expected cursor cleared on cancel")
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, ctl := newTestModel(t, "Buy milk", "Call mom")

	m = press(t, m, "d")
	if m.Mode != ModeConfirm {
		t.Fatalf("expected confirm mode, got %q", m.Mode)
	}
	if prompt, ok := ctl.PendingPrompt(); !ok || prompt != controller.DeletePrompt {
		t.Fatalf("unexpected prompt %q ok=%v", prompt, ok)
	}
	if !strings.Contains(m.View(), controller.DeletePrompt) {
		t.Fatal("expected prompt in view")
	}

	// Other keys are ignored while the question is open.
	m = press(t, m, "x")
	if ctl.Statistics().Completed != 0 || m.Mode != ModeConfirm {
		t.Fatal("expected toggle ignored during confirmation")
	}

	m = press(t, m, "n")
	if len(ctl.Tasks()) != 2 || m.Mode != ModeBrowse {
		t.Fatalf("decline should keep tasks, got %d mode=%q", len(ctl.Tasks()), m.Mode)
	}

	m = press(t, m, "d", "y")
	tasks := ctl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("expected Call mom removed, got %+v", tasks)
	}
	if !strings.Contains(m.Status.Text, "deleted 1 task") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestClearCompleted(t *testing.T) {
	m, ctl := newTestModel(t, "a", "b", "c")

	m = press(t, m, "C")
	if m.Mode != ModeBrowse || m.Status.Text != "no completed tasks to clear" {
		t.Fatalf("expected no prompt, mode=%q status=%+v", m.Mode, m.Status)
	}

	m = press(t, m, "x", "j", "x", "C")
	if prompt, _ := ctl.PendingPrompt(); prompt != controller.ClearCompletedPrompt(2) {
		t.Fatalf("unexpected prompt %q", prompt)
	}
	m = press(t, m, "y")
	if got := ctl.Tasks(); len(got) != 1 || got[0].Text != "a" {
		t.Fatalf("expected only a left, got %+v", got)
	}
	if m.Cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", m.Cursor)
	}
}

func TestFilterKeys(t *testing.T) {
	m, ctl := newTestModel(t, "a", "b")
	m = press(t, m, "x", "2")
	if ctl.Filter() != model.FilterPending {
		t.Fatalf("expected pending filter, got %q", ctl.Filter())
	}
	if view := ctl.FilteredView(); len(view) != 1 || view[0].Text != "a" {
		t.Fatalf("unexpected pending view: %+v", view)
	}

	m = press(t, m, "f")
	if ctl.Filter() != model.FilterCompleted {
		t.Fatalf("expected completed filter, got %q", ctl.Filter())
	}
	m = press(t, m, "1")
	if ctl.Filter() != model.FilterAll {
		t.Fatalf("expected all filter, got %q", ctl.Filter())
	}
}

func TestEmptyStatePerFilter(t *testing.T) {
	m, _ := newTestModel(t)
	if out := m.View(); !strings.Contains(out, "Your list is empty!") {
		t.Fatalf("expected empty state, got %q", out)
	}
	m = press(t, m, "3")
	if out := m.View(); !strings.Contains(out, "No completed tasks!") {
		t.Fatalf("expected completed empty state, got %q", out)
	}
}

func TestPaletteCommands(t *testing.T) {
	m, ctl := newTestModel(t)

	m = press(t, m, "/", "add call mom", "enter")
	if got := ctl.Tasks(); len(got) != 1 || got[0].Text != "call mom" {
		t.Fatalf("unexpected tasks after palette add: %+v", got)
	}
	if m.Mode != ModeBrowse || m.Palette.Active {
		t.Fatalf("expected palette closed, mode=%q", m.Mode)
	}

	m = press(t, m, "/", "done", "enter")
	if !ctl.Tasks()[0].Completed {
		t.Fatal("expected done to toggle the selected task")
	}

	m = press(t, m, "/", "edit call dad", "enter")
	if got := ctl.Tasks()[0].Text; got != "call dad" {
		t.Fatalf("unexpected text after palette edit: %q", got)
	}

	m = press(t, m, "/", "filter completed", "enter")
	if ctl.Filter() != model.FilterCompleted {
		t.Fatalf("expected completed filter, got %q", ctl.Filter())
	}

	m = press(t, m, "/", "clear", "enter")
	if m.Mode != ModeConfirm {
		t.Fatalf("expected clear to open confirmation, got %q", m.Mode)
	}
	m = press(t, m, "y")
	if len(ctl.Tasks()) != 0 {
		t.Fatalf("expected list cleared, got %+v", ctl.Tasks())
	}
}

func TestPaletteErrors(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/", "snooze all", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, "/", "filter someday", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, string(model.ErrCodeInvalidFilter)) {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestViewRendersTaskTextLiterally(t *testing.T) {
	m, _ := newTestModel(t, "\x1b[31mred alert", "<b>bold</b>")
	out := m.View()
	if strings.Contains(out, "\x1b[31mred") {
		t.Fatalf("escape sequence leaked into view: %q", out)
	}
	if !strings.Contains(out, "red alert") || !strings.Contains(out, "<b>bold</b>") {
		t.Fatalf("expected literal task text in view: %q", out)
	}
	if !strings.Contains(out, "2 tasks · 0 completed") {
		t.Fatalf("expected stats in view: %q", out)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "help:") {
		t.Fatal("expected help panel")
	}
	m = press(t, m, "?")
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !updated.(Model).Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestPaletteRejectsOverlongText(t *testing.T) {
	m, ctl := newTestModel(t, "Buy milk")

	m = press(t, m, "/", "add "+strings.Repeat("x", model.MaxTextLength+50), "enter")
	if len(ctl.Tasks()) != 1 {
		t.Fatalf("expected overlong add rejected, got %+v", ctl.Tasks())
	}
	if !m.Status.IsError || !strings.Contains(m.Status.Text, string(model.ErrCodeTextTooLong)) {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, "/", "edit "+strings.Repeat("y", model.MaxTextLength+52), "enter")
	if got := ctl.Tasks()[0].Text; got != "Buy milk" {
		t.Fatalf("expected overlong edit rejected, got %q", got)
	}
	if ctl.EditingID() != "" {
		t.Fatalf("expected no edit left open, got %q", ctl.EditingID())
	}
	if !m.Status.IsError || !strings.Contains(m.Status.Text, string(model.ErrCodeTextTooLong)) {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, "/", "add "+strings.Repeat("z", model.MaxTextLength), "enter")
	if len(ctl.Tasks()) != 2 {
		t.Fatalf("expected text at the limit accepted, got %d tasks", len(ctl.Tasks()))
	}
}

func TestHelpViewsFollowMode(t *testing.T) {
	m, _ := newTestModel(t, "alpha")
	footer := m.helpModel.View(helpKeyMap{short: m.shortBindings()})
	if !strings.Contains(footer, "next filter") {
		t.Fatalf("browse footer should list global keys, got %q", footer)
	}

	m = press(t, m, "a")
	footer = m.helpModel.View(helpKeyMap{short: m.shortBindings()})
	if !strings.Contains(footer, "save") || strings.Contains(footer, "next filter") {
		t.Fatalf("add footer should list input keys only, got %q", footer)
	}
	m = press(t, m, "esc")

	panel := m.renderHelpView()
	for _, want := range []string{"clear completed", "commands", "move selection"} {
		if !strings.Contains(panel, want) {
			t.Fatalf("help panel missing %q:\n%s", want, panel)
		}
	}
	if m.helpModel.ShowAll {
		t.Fatal("rendering the panel must not switch the footer to full help")
	}
}
