package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/richtext"
	"github.com/saulo-duarte/taskflow/internal/task"
)

const TitleRequired = "The title field is required."

// TaskWriter is what the form needs to persist a draft.
type TaskWriter interface {
	Create(ctx context.Context, d Draft) (*inertia.Page, error)
	Update(ctx context.Context, id string, d Draft) (*inertia.Page, error)
}

// Form is the create/edit surface for one task. The description is owned by
// the rich-text editor and mirrored into the draft on every change.
type Form struct {
	writer TaskWriter
	editor richtext.Editor

	mu         sync.Mutex
	draft      Draft
	editingID  string
	currentURL *string
	open       bool
	processing bool
	errors     map[string]string
}

func NewForm(writer TaskWriter, editor richtext.Editor) *Form {
	f := &Form{writer: writer, editor: editor}
	editor.OnChange(f.setDescription)
	return f
}

// Open shows the form, empty for a new task or filled from an existing one.
func (f *Form) Open(existing *task.TaskResponse) {
	f.mu.Lock()
	f.open = true
	f.errors = nil
	if existing == nil {
		f.draft = Draft{}
		f.editingID = ""
		f.currentURL = nil
	} else {
		f.draft = Draft{
			Title:       existing.Title,
			Description: existing.Description,
			IsFinished:  existing.IsFinished,
		}
		f.editingID = existing.ID.String()
		f.currentURL = existing.CoverURL
	}
	description := f.draft.Description
	f.mu.Unlock()

	f.editor.LoadContent(description)
}

func (f *Form) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

func (f *Form) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Form) Editing() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID
}

func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	f.draft.Title = title
	f.mu.Unlock()
}

func (f *Form) SetFinished(finished bool) {
	f.mu.Lock()
	f.draft.IsFinished = finished
	f.mu.Unlock()
}

func (f *Form) SetCover(a *Attachment) {
	f.mu.Lock()
	f.draft.Cover = a
	f.mu.Unlock()
}

func (f *Form) setDescription(html string) {
	f.mu.Lock()
	f.draft.Description = html
	f.mu.Unlock()
}

func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// CoverPreview is the URL of the stored cover while no new file is picked.
func (f *Form) CoverPreview() *string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft.Cover != nil {
		return nil
	}
	return f.currentURL
}

func (f *Form) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submit sends the draft. A blank title fails locally without a request.
// On validation failure the draft is kept and the field errors are stored;
// on success the draft is reset and the form closes.
func (f *Form) Submit(ctx context.Context) (*inertia.Page, error) {
	f.mu.Lock()
	if f.processing {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if strings.TrimSpace(f.draft.Title) == "" {
		f.errors = map[string]string{"title": TitleRequired}
		f.mu.Unlock()
		return nil, &ValidationError{Fields: map[string]string{"title": TitleRequired}}
	}
	f.processing = true
	draft := f.draft
	id := f.editingID
	f.mu.Unlock()

	var (
		page *inertia.Page
		err  error
	)
	if id == "" {
		page, err = f.writer.Create(ctx, draft)
	} else {
		page, err = f.writer.Update(ctx, id, draft)
	}

	f.mu.Lock()
	f.processing = false
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		f.errors = verr.Fields
		f.mu.Unlock()
		return page, err
	case err != nil:
		f.mu.Unlock()
		return nil, err
	}
	f.draft = Draft{}
	f.editingID = ""
	f.currentURL = nil
	f.errors = nil
	f.open = false
	f.mu.Unlock()

	f.editor.LoadContent("")
	return page, nil
}
