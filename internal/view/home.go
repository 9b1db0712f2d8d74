// Package view renders the server-side HTML of the pages the Inertia client
// takes over once its bundle loads.
package view

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/richtext"
	"github.com/saulo-duarte/taskflow/internal/task"
	util "github.com/saulo-duarte/taskflow/internal/utils"
)

const (
	EmptyText        = "No tasks found."
	TimestampLayout  = "02 Jan 2006 15:04"
	DescriptionLines = 3
)

type HomeData struct {
	Auth    task.AuthProps
	Todos   *task.PageResult
	Stats   task.Stats
	Filters task.Filters
	Flash   map[string]interface{}
	Errors  map[string]string
}

func (d HomeData) Percent() int {
	return d.Stats.CompletionPercent()
}

func (d HomeData) Statuses() []task.StatusFilter {
	return task.AllStatuses
}

var homeTpl = template.Must(template.New("home").Funcs(template.FuncMap{
	"richtext": func(s string) template.HTML { return template.HTML(richtext.Sanitize(s)) },
	"snippet":  func(s string) string { return richtext.Snippet(s, DescriptionLines) },
	"stamp":    func(t time.Time) string { return util.Format(t, TimestampLayout) },
	"label":    func(s string) template.HTML { return template.HTML(richtext.Sanitize(s)) },
	"pie":      PieChart,
	"title":    statusLabel,
	"deref":    deref,
}).Parse(homeTemplate))

func statusLabel(s task.StatusFilter) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func RenderHome(w io.Writer, d HomeData) error {
	if d.Todos == nil {
		d.Todos = &task.PageResult{}
	}
	return homeTpl.Execute(w, d)
}

// Register binds the home page view to the renderer.
func Register(rd *inertia.Renderer) {
	rd.Register(task.HomeComponent, func(w io.Writer, props inertia.Props) error {
		d, err := homeDataFromProps(props)
		if err != nil {
			return err
		}
		return RenderHome(w, d)
	})
}

func homeDataFromProps(props inertia.Props) (HomeData, error) {
	var d HomeData

	switch v := props["todos"].(type) {
	case *task.PageResult:
		d.Todos = v
	case nil:
	default:
		return d, fmt.Errorf("todos prop has unexpected type %T", v)
	}
	switch v := props["stats"].(type) {
	case *task.Stats:
		d.Stats = *v
	case task.Stats:
		d.Stats = v
	}
	if v, ok := props["auth"].(task.AuthProps); ok {
		d.Auth = v
	}
	if v, ok := props["filters"].(task.Filters); ok {
		d.Filters = v
	}
	if v, ok := props["flash"].(map[string]interface{}); ok {
		d.Flash = v
	}
	if v, ok := props["errors"].(map[string]string); ok {
		d.Errors = v
	}
	return d, nil
}

const homeTemplate = `<header class="topbar">
  <span class="brand">TaskFlow</span>
  {{with .Auth.Name}}<span class="user">{{.}}</span>{{end}}
  <form method="post" action="/auth/logout"><button type="submit">Log out</button></form>
</header>
{{with .Flash}}{{with index . "success"}}<div class="flash flash-success" role="status">{{.}}</div>{{end}}{{end}}
<section class="summary">
  <h2>Summary</h2>
  <p class="completion">{{.Percent}}% completed</p>
  <div class="progress"><div class="progress-bar" style="width: {{.Percent}}%"></div></div>
  <ul class="counters">
    <li class="finished">Finished: {{.Stats.Finished}}</li>
    <li class="unfinished">Unfinished: {{.Stats.Unfinished}}</li>
  </ul>
  {{if .Stats.Total}}{{pie .Stats.Finished .Stats.Unfinished}}{{else}}<p class="no-data">No data to display.</p>{{end}}
</section>
<form class="filters" method="get" action="/">
  <input type="search" name="search" value="{{.Filters.Search}}" placeholder="Search tasks...">
  <select name="status">
    {{$current := .Filters.Status}}{{range .Statuses}}<option value="{{.}}"{{if eq . $current}} selected{{end}}>{{title .}}</option>{{end}}
  </select>
  <button type="submit">Filter</button>
</form>
<form class="task-form" method="post" action="/todos" enctype="multipart/form-data">
  <input type="text" name="title" maxlength="255" placeholder="Title" required>
  {{with .Errors}}{{with index . "title"}}<p class="field-error">{{.}}</p>{{end}}{{end}}
  <textarea name="description" placeholder="Description"></textarea>
  <input type="file" name="cover" accept="image/*">
  {{with .Errors}}{{with index . "cover"}}<p class="field-error">{{.}}</p>{{end}}{{end}}
  <button type="submit">Add task</button>
</form>
{{if .Todos.Data}}
<ul class="tasks">
  {{range .Todos.Data}}
  <li class="task" id="task-{{.ID}}">
    <form method="post" action="/todos/{{.ID}}/status">
      <input type="hidden" name="_method" value="PATCH">
      <input type="hidden" name="is_finished" value="{{if .IsFinished}}0{{else}}1{{end}}">
      <button type="submit" class="toggle" aria-pressed="{{.IsFinished}}">{{if .IsFinished}}&#10003;{{else}}&#9675;{{end}}</button>
    </form>
    <div class="task-body">
      <h3 class="task-title{{if .IsFinished}} line-through{{end}}">{{.Title}}</h3>
      {{if .Description}}<div class="task-description line-clamp-3" title="{{snippet .Description}}">{{richtext .Description}}</div>{{end}}
      <time datetime="{{.CreatedAt.Format "2006-01-02T15:04:05Z07:00"}}">{{stamp .CreatedAt}}</time>
    </div>
    {{with .CoverURL}}<img class="cover" src="{{deref .}}" alt="" loading="lazy">{{end}}
    <div class="actions">
      <a class="edit" href="/?edit={{.ID}}">Edit</a>
      <form method="post" action="/todos/{{.ID}}" data-confirm="Are you sure you want to delete this task?">
        <input type="hidden" name="_method" value="DELETE">
        <button type="submit" class="delete">Delete</button>
      </form>
    </div>
  </li>
  {{end}}
</ul>
{{else}}
<p class="empty">` + EmptyText + `</p>
{{end}}
{{if .Todos.Links}}
<nav class="pagination">
  {{range .Todos.Links}}{{if .URL}}<a href="{{deref .URL}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{label .Label}}</a>{{else}}<span class="disabled">{{label .Label}}</span>{{end}}
  {{end}}
</nav>
{{end}}
`
