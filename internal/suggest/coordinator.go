package suggest

// Coordinator tracks the single open suggestion panel and closes it when the
// user interacts with anything other than its field or the panel itself.
type Coordinator struct {
	open     *Controller
	registry map[string]*Controller
}

// NewCoordinator creates an empty coordinator
func NewCoordinator() *Coordinator {
	return &Coordinator{registry: make(map[string]*Controller)}
}

func (c *Coordinator) register(ctrl *Controller) {
	c.registry[ctrl.id] = ctrl
}

// opened records ctrl as the visible panel, hiding any other
func (c *Coordinator) opened(ctrl *Controller) {
	if c.open != nil && c.open != ctrl {
		c.open.hide()
	}
	c.open = ctrl
}

func (c *Coordinator) closed(ctrl *Controller) {
	if c.open == ctrl {
		c.open = nil
	}
}

// Interact reports a user interaction on target (a field or panel ID).
// The open panel hides unless target belongs to it.
func (c *Coordinator) Interact(target string) {
	if c.open == nil {
		return
	}
	if target == c.open.id || target == PanelID(c.open.id) {
		return
	}
	c.open.Hide()
}

// Dismiss hides whatever panel is open
func (c *Coordinator) Dismiss() {
	if c.open != nil {
		c.open.Hide()
	}
}

// Open returns the controller whose panel is visible, if any
func (c *Coordinator) Open() *Controller {
	return c.open
}

// Lookup returns the controller bound to field id
func (c *Coordinator) Lookup(id string) (*Controller, bool) {
	ctrl, ok := c.registry[id]
	return ctrl, ok
}

// PanelID is the interaction target for the panel of field id
func PanelID(id string) string {
	return id + "#panel"
}
