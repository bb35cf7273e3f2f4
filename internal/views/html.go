package views

import (
	"html/template"
	"io"

	"github.com/sandeepkv93/tasklist/internal/controller"
	"github.com/sandeepkv93/tasklist/internal/model"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Task list</title>
</head>
<body>
<div class="filters">
{{- range .Filters}}
<button class="filter-btn{{if .Active}} active{{end}}" data-filter="{{.Name}}">{{.Label}}</button>
{{- end}}
</div>
<div class="stats">
<span id="totalTasks">{{.TotalLabel}}</span>
<span id="completedTasks">{{.CompletedLabel}}</span>
<button id="clearCompleted" {{if not .ClearEnabled}}disabled{{end}}>Clear completed</button>
</div>
<ul id="taskList">
{{- range .Rows}}
{{- if .Editing}}
<li class="task-item editing" data-id="{{.ID}}"><input type="text" class="edit-input" value="{{.Text}}" maxlength="{{$.MaxLength}}"></li>
{{- else}}
<li class="task-item{{if .Completed}} completed{{end}}" data-id="{{.ID}}"><span class="task-checkbox{{if .Completed}} checked{{end}}"></span><span class="task-text">{{.Text}}</span></li>
{{- end}}
{{- else}}
<li class="empty-state"><p>{{.EmptyMessage}}</p><small>Add a new task to get started</small></li>
{{- end}}
</ul>
{{- if .Prompt}}
<dialog open class="confirm">{{.Prompt}}</dialog>
{{- end}}
</body>
</html>
`))

type htmlFilter struct {
	Name   string
	Label  string
	Active bool
}

type htmlRow struct {
	ID        string
	Text      string
	Completed bool
	Editing   bool
}

type htmlPage struct {
	Filters        []htmlFilter
	Rows           []htmlRow
	TotalLabel     string
	CompletedLabel string
	ClearEnabled   bool
	EmptyMessage   string
	MaxLength      int
	Prompt         string
}

// RenderHTML writes s as a standalone page. Task text is contextually
// escaped, so markup in a task never becomes structure.
func RenderHTML(w io.Writer, s controller.Snapshot) error {
	page := htmlPage{
		TotalLabel:     CountLabel(s.Stats.Total, "task", "tasks"),
		CompletedLabel: CountLabel(s.Stats.Completed, "completed", "completed"),
		ClearEnabled:   s.Stats.ClearEnabled(),
		EmptyMessage:   EmptyStateMessage(s.Filter),
		MaxLength:      model.MaxTextLength,
		Prompt:         s.Prompt,
	}
	for _, f := range model.Filters {
		page.Filters = append(page.Filters, htmlFilter{Name: string(f), Label: filterLabel(f), Active: f == s.Filter})
	}
	for _, t := range s.View {
		page.Rows = append(page.Rows, htmlRow{ID: t.ID, Text: t.Text, Completed: t.Completed, Editing: s.Editing(t.ID)})
	}
	return pageTemplate.Execute(w, page)
}

// HTMLRenderer re-renders the page into w on every notification and keeps
// the last error.
type HTMLRenderer struct {
	w   io.Writer
	err error
}

func NewHTMLRenderer(w io.Writer) *HTMLRenderer {
	return &HTMLRenderer{w: w}
}

func (r *HTMLRenderer) Render(s controller.Snapshot) {
	r.err = RenderHTML(r.w, s)
}

func (r *HTMLRenderer) Err() error { return r.err }
