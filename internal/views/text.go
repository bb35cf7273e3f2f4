package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/controller"
)

// TextRenderer writes a plain list to w each time it is notified. It backs
// the non-interactive commands.
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(s controller.Snapshot) {
	fmt.Fprintln(r.w, RenderText(s))
}

func RenderText(s controller.Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("tasks (%s)", s.Filter)))
	b.WriteString("\n")
	if len(s.View) == 0 {
		b.WriteString("  " + EmptyStateMessage(s.Filter) + "\n")
	}
	for _, t := range s.View {
		text := SanitizeTerminal(t.Text)
		if t.Completed {
			text = completedStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", checkbox(t.Completed), text, mutedStyle.Render(ShortID(t.ID))))
	}
	b.WriteString(fmt.Sprintf("%s · %s",
		CountLabel(s.Stats.Total, "task", "tasks"),
		CountLabel(s.Stats.Completed, "completed", "completed"),
	))
	return b.String()
}
