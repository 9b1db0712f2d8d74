package richtext

import "sync"

// Editor is the capability the task form needs from a rich-text widget.
type Editor interface {
	LoadContent(html string)
	OnChange(fn func(html string))
}

// Field is an in-memory Editor. Typing is simulated with Input.
type Field struct {
	mu        sync.Mutex
	value     string
	listeners []func(string)
}

func NewField() *Field {
	return &Field{}
}

// LoadContent replaces the content without notifying listeners.
func (f *Field) LoadContent(html string) {
	f.mu.Lock()
	f.value = html
	f.mu.Unlock()
}

func (f *Field) OnChange(fn func(html string)) {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

// Input sets the content as a user edit would. Listeners fire only when the
// value actually changes.
func (f *Field) Input(html string) {
	f.mu.Lock()
	if html == f.value {
		f.mu.Unlock()
		return
	}
	f.value = html
	listeners := append([]func(string){}, f.listeners...)
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(html)
	}
}

func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}
