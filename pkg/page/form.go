package page

import (
	"strings"
	"sync"
)

// Form holds user-entered field values and a submit binding. Field values are
// trimmed on read, the way the page trims inputs before use.
type Form struct {
	mu       sync.Mutex
	name     string
	fields   map[string]string
	submit   *Control
	onSubmit func()
}

// Name returns the form's identifier.
func (f *Form) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// SubmitControl returns the form's submit control.
func (f *Form) SubmitControl() *Control {
	if f == nil {
		return nil
	}
	return f.submit
}

// SetField sets a field's raw value. Unknown fields are ignored.
func (f *Form) SetField(name, value string) {
	if f == nil {
		return
	}
	f.mu.Lock()
	if _, ok := f.fields[name]; ok {
		f.fields[name] = value
	}
	f.mu.Unlock()
}

// Field returns a field's trimmed value.
func (f *Form) Field(name string) string {
	if f == nil {
		return ""
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.TrimSpace(f.fields[name])
}

// Reset clears every field.
func (f *Form) Reset() {
	if f == nil {
		return
	}
	f.mu.Lock()
	for k := range f.fields {
		f.fields[k] = ""
	}
	f.mu.Unlock()
}

// OnSubmit binds the submit handler.
func (f *Form) OnSubmit(fn func()) {
	if f == nil {
		return
	}
	f.mu.Lock()
	f.onSubmit = fn
	f.mu.Unlock()
}

// Submit triggers the bound handler. While the submit control is disabled
// (a request in flight) submission is suppressed; this is the page's only
// guard against duplicate concurrent submissions.
func (f *Form) Submit() {
	if f == nil {
		return
	}
	if f.submit.Disabled() {
		return
	}
	f.mu.Lock()
	fn := f.onSubmit
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}
