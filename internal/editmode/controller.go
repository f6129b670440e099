// Package editmode holds the process-wide editing state for the admin
// overlay: whether a valid admin session exists, and whether in-place
// editing is switched on. Page handlers consult it to decide if a content
// block should be rendered with edit affordances.
package editmode

import "sync"

type State struct {
	IsAdmin    bool `json:"is_admin"`
	IsEditMode bool `json:"is_edit_mode"`
}

// Controller is the single owner of the edit-mode flags. All transitions go
// through it so the invariant holds: edit mode can never be on without a
// valid session, not even transiently.
type Controller struct {
	mu    sync.Mutex
	state State
}

func NewController() *Controller {
	return &Controller{}
}

// SetSession records a session change. Losing the session forces edit mode
// off in the same critical section, so no reader ever observes
// {IsAdmin: false, IsEditMode: true}.
func (c *Controller) SetSession(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsAdmin = active
	if !active {
		c.state.IsEditMode = false
	}
}

// SetEditMode toggles editing. A no-op without an admin session.
func (c *Controller) SetEditMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsAdmin {
		return
	}
	c.state.IsEditMode = on
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
