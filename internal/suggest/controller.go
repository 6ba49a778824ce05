// Package suggest drives history-backed dropdowns under text fields.
package suggest

import "github.com/nhath/ezchat/internal/history"

// Mode selects when a panel populates
type Mode int

const (
	// Hover shows the unfiltered list on an explicit reveal
	Hover Mode = iota
	// LiveFilter re-filters on every edit of the field
	LiveFilter
)

// Controller is bound to one (field, panel, category) triple
type Controller struct {
	id       string
	category history.Category
	mode     Mode
	store    history.Recorder
	coord    *Coordinator

	items    []string
	selected int
	visible  bool
}

// New binds a controller to field id and registers it with coord
func New(id string, cat history.Category, mode Mode, store history.Recorder, coord *Coordinator) *Controller {
	c := &Controller{
		id:       id,
		category: cat,
		mode:     mode,
		store:    store,
		coord:    coord,
		selected: -1,
	}
	coord.register(c)
	return c
}

// ID returns the bound field ID
func (c *Controller) ID() string { return c.id }

// Category returns the history category the panel lists
func (c *Controller) Category() history.Category { return c.category }

// Mode returns the trigger mode
func (c *Controller) Mode() Mode { return c.mode }

// Focus shows entries matching the field's current content
func (c *Controller) Focus(value string) {
	c.coord.Interact(c.id)
	c.show(c.store.Filter(c.category, value))
}

// Hover reveals the full list. Only meaningful in Hover mode.
func (c *Controller) Hover() {
	if c.mode != Hover {
		return
	}
	c.coord.Interact(c.id)
	c.show(c.store.List(c.category))
}

// Input re-filters against the new field content. Only meaningful in LiveFilter mode.
func (c *Controller) Input(value string) {
	if c.mode != LiveFilter {
		return
	}
	// The list changed under the highlight
	c.selected = -1
	c.show(c.store.Filter(c.category, value))
}

// Select returns the full text of entry i and hides the panel.
// The caller sets the field to the text and keeps focus on it.
func (c *Controller) Select(i int) (string, bool) {
	if !c.visible || i < 0 || i >= len(c.items) {
		return "", false
	}
	value := c.items[i]
	c.Hide()
	return value, true
}

// Accept selects the highlighted entry. Nothing is highlighted until the
// user moves through the list, so Accept fails until then.
func (c *Controller) Accept() (string, bool) {
	return c.Select(c.selected)
}

// MoveUp moves the highlight up, starting at the first entry
func (c *Controller) MoveUp() {
	if c.selected > 0 {
		c.selected--
	} else if len(c.items) > 0 {
		c.selected = 0
	}
}

// MoveDown moves the highlight down
func (c *Controller) MoveDown() {
	if c.selected < len(c.items)-1 {
		c.selected++
	}
}

// Highlighted reports whether the user picked an entry with MoveUp or MoveDown
func (c *Controller) Highlighted() bool {
	return c.visible && c.selected >= 0
}

// Hide closes the panel
func (c *Controller) Hide() {
	c.hide()
	c.coord.closed(c)
}

func (c *Controller) hide() {
	c.visible = false
	c.items = nil
	c.selected = -1
}

// show renders items, or hides the panel when there is nothing to show
func (c *Controller) show(items []string) {
	if len(items) == 0 {
		c.Hide()
		return
	}
	c.items = items
	if c.selected >= len(items) {
		c.selected = -1
	}
	c.visible = true
	c.coord.opened(c)
}

// Visible reports whether the panel is shown
func (c *Controller) Visible() bool { return c.visible }

// Items returns the entries currently in the panel
func (c *Controller) Items() []string { return c.items }

// Selected returns the highlighted index, or -1 when nothing is highlighted
func (c *Controller) Selected() int { return c.selected }
