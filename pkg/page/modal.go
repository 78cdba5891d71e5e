package page

import "sync"

// Modal is an overlay with an independent open/closed flag. The flag and its
// accessibility mirror are the single source of truth; opening and closing
// are the only transitions. Modals do not know about each other, so any
// number may be open at once.
type Modal struct {
	mu         sync.Mutex
	name       string
	open       bool
	ariaHidden bool
	page       *Page
}

// Name returns the modal's identifier.
func (m *Modal) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

// IsOpen reports whether the modal is open.
func (m *Modal) IsOpen() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// AriaHidden returns the accessibility-hidden mirror attribute.
func (m *Modal) AriaHidden() bool {
	if m == nil {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ariaHidden
}

// Open makes the modal visible. Returns whether the state changed.
func (m *Modal) Open() bool {
	return m.transition(true)
}

// Close hides the modal. Returns whether the state changed.
func (m *Modal) Close() bool {
	return m.transition(false)
}

func (m *Modal) transition(open bool) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	if m.open == open {
		m.mu.Unlock()
		return false
	}
	m.open = open
	m.ariaHidden = !open
	m.mu.Unlock()
	if m.page != nil {
		m.page.modalChanged(m.name, open)
	}
	return true
}

// ClickBackdrop is a click whose direct target is the modal's outer
// container: it closes the modal if open.
func (m *Modal) ClickBackdrop() {
	m.Close()
}

// ClickContent is a click on the modal's inner content; it never closes.
func (m *Modal) ClickContent() {}

// BindCloseControl makes the given control close this modal on click.
func (m *Modal) BindCloseControl(c *Control) {
	if m == nil {
		return
	}
	c.OnClick(func() { m.Close() })
}
