// Package page models the landing page surface: named regions, controls,
// modals and forms that stand in for the document, so components can be
// driven and observed without a browser. Elements are registered once at
// page construction; lookups of missing elements return nil and every
// element method is nil-safe, mirroring the page's optional sections.
package page

import (
	"sync"

	"go.uber.org/zap"
)

// Page is the registry of surface elements for one landing page.
type Page struct {
	regions  map[string]*Region
	videos   map[string]*Video
	controls map[string]*Control
	modals   map[string]*Modal
	forms    map[string]*Form

	notifier Notifier
	logger   *zap.Logger

	mu            sync.Mutex
	onModalChange func(id string, open bool)
}

// New creates an empty page surface.
func New(notifier Notifier, logger *zap.Logger) *Page {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewMemoryNotifier()
	}
	return &Page{
		regions:  make(map[string]*Region),
		videos:   make(map[string]*Video),
		controls: make(map[string]*Control),
		modals:   make(map[string]*Modal),
		forms:    make(map[string]*Form),
		notifier: notifier,
		logger:   logger,
	}
}

// Notifier returns the page's notifier.
func (p *Page) Notifier() Notifier { return p.notifier }

// OnModalChange registers an observer invoked after every actual modal
// open/close transition.
func (p *Page) OnModalChange(fn func(id string, open bool)) {
	p.mu.Lock()
	p.onModalChange = fn
	p.mu.Unlock()
}

func (p *Page) modalChanged(id string, open bool) {
	p.logger.Debug("modal transition", zap.String("id", id), zap.Bool("open", open))
	p.mu.Lock()
	fn := p.onModalChange
	p.mu.Unlock()
	if fn != nil {
		fn(id, open)
	}
}

// AddRegion registers a text region.
func (p *Page) AddRegion(name string) *Region {
	r := &Region{name: name}
	p.regions[name] = r
	return r
}

// Region returns the named region, or nil if the page has no such section.
func (p *Page) Region(name string) *Region { return p.regions[name] }

// AddVideo registers a video element.
func (p *Page) AddVideo(name string) *Video {
	v := &Video{name: name}
	p.videos[name] = v
	return v
}

// Video returns the named video element, or nil.
func (p *Page) Video(name string) *Video { return p.videos[name] }

// AddControl registers a clickable control with its label.
func (p *Page) AddControl(name, label string) *Control {
	c := &Control{name: name, label: label}
	p.controls[name] = c
	return c
}

// Control returns the named control, or nil.
func (p *Page) Control(name string) *Control { return p.controls[name] }

// AddModal registers a modal, initially closed.
func (p *Page) AddModal(name string) *Modal {
	m := &Modal{name: name, ariaHidden: true, page: p}
	p.modals[name] = m
	return m
}

// Modal returns the named modal, or nil.
func (p *Page) Modal(name string) *Modal { return p.modals[name] }

// AddForm registers a form with its submit control and field names.
func (p *Page) AddForm(name string, submit *Control, fields ...string) *Form {
	f := &Form{name: name, submit: submit, fields: make(map[string]string, len(fields))}
	for _, field := range fields {
		f.fields[field] = ""
	}
	p.forms[name] = f
	return f
}

// Form returns the named form, or nil.
func (p *Page) Form(name string) *Form { return p.forms[name] }

// Region is a named text slot.
type Region struct {
	mu   sync.Mutex
	name string
	text string
}

// SetText replaces the region's textual content.
func (r *Region) SetText(s string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.text = s
	r.mu.Unlock()
}

// Text returns the region's current content.
func (r *Region) Text() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// Video is a named playback element. Source URLs are pre-configured for
// autoplay, so setting the source is all it takes to start playback.
type Video struct {
	mu   sync.Mutex
	name string
	src  string
}

// SetSource sets the active video source.
func (v *Video) SetSource(url string) {
	if v == nil {
		return
	}
	v.mu.Lock()
	v.src = url
	v.mu.Unlock()
}

// Source returns the active video source.
func (v *Video) Source() string {
	if v == nil {
		return ""
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.src
}
