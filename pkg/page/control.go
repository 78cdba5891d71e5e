package page

import "sync"

// loadingLabel stands in for the spinner shown while a request is in flight.
const loadingLabel = "…"

// Control is a clickable element (button or submit control). While loading it
// is disabled and shows a transient indicator instead of its label; restoring
// brings back the saved label and re-enables interaction.
type Control struct {
	mu         sync.Mutex
	name       string
	label      string
	savedLabel string
	disabled   bool
	loading    bool
	onClick    func()
}

// Name returns the control's identifier.
func (c *Control) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Label returns the control's current visible label.
func (c *Control) Label() string {
	if c == nil {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// Disabled reports whether the control ignores clicks.
func (c *Control) Disabled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

// OnClick binds the click handler. A nil control is a silent no-op, matching
// the optional-section contract.
func (c *Control) OnClick(fn func()) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.onClick = fn
	c.mu.Unlock()
}

// Click invokes the bound handler unless the control is disabled or unbound.
func (c *Control) Click() {
	if c == nil {
		return
	}
	c.mu.Lock()
	fn := c.onClick
	disabled := c.disabled
	c.mu.Unlock()
	if disabled || fn == nil {
		return
	}
	fn()
}

// SetLoading toggles the loading state. Entering saves the label, swaps in
// the indicator and disables the control; leaving restores both.
func (c *Control) SetLoading(loading bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if loading {
		if !c.loading {
			c.savedLabel = c.label
		}
		c.label = loadingLabel
		c.disabled = true
		c.loading = true
		return
	}
	if c.savedLabel != "" {
		c.label = c.savedLabel
	}
	c.disabled = false
	c.loading = false
}
