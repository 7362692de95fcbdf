package listsync

import "errors"

// Kind is the UI mode of a list screen.
type Kind int

const (
	Viewing Kind = iota
	Adding
	Editing
	Deleting         // delete affordances shown on every card
	ConfirmingDelete // waiting for the user to confirm one deletion
)

func (k Kind) String() string {
	switch k {
	case Viewing:
		return "viewing"
	case Adding:
		return "adding"
	case Editing:
		return "editing"
	case Deleting:
		return "deleting"
	case ConfirmingDelete:
		return "confirming-delete"
	}
	return "unknown"
}

// ErrNotDeleting is returned by RequestDelete outside delete mode.
var ErrNotDeleting = errors.New("listsync: delete requested outside delete mode")

// Mode is a tagged variant: only Editing and ConfirmingDelete carry an item.
// The zero value is Viewing.
type Mode[T any] struct {
	kind Kind
	item T
}

func viewing[T any]() Mode[T] { return Mode[T]{kind: Viewing} }

// Kind reports the variant.
func (m Mode[T]) Kind() Kind { return m.kind }

// Item returns the target record of Editing and ConfirmingDelete.
func (m Mode[T]) Item() (T, bool) {
	if m.kind == Editing || m.kind == ConfirmingDelete {
		return m.item, true
	}
	var zero T
	return zero, false
}

// StartAdding opens the create form, leaving any other mode.
func (c *Controller[T, D]) StartAdding() {
	c.setMode(Mode[T]{kind: Adding})
}

// StartEditing selects item for editing, leaving any other mode.
func (c *Controller[T, D]) StartEditing(item T) {
	c.setMode(Mode[T]{kind: Editing, item: item})
}

// ToggleDeleting enters delete mode, or leaves it when already in it.
func (c *Controller[T, D]) ToggleDeleting() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode.kind == Deleting || c.mode.kind == ConfirmingDelete {
		c.mode = viewing[T]()
		return
	}
	c.mode = Mode[T]{kind: Deleting}
}

// RequestDelete asks for confirmation to delete item. Only valid in delete
// mode.
func (c *Controller[T, D]) RequestDelete(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode.kind != Deleting {
		return ErrNotDeleting
	}
	c.mode = Mode[T]{kind: ConfirmingDelete, item: item}
	return nil
}

// Cancel backs out of the current mode. Declining a delete confirmation
// returns to delete mode; everything else returns to Viewing.
func (c *Controller[T, D]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode.kind == ConfirmingDelete {
		c.mode = Mode[T]{kind: Deleting}
		return
	}
	c.mode = viewing[T]()
}

// Mode returns the current mode.
func (c *Controller[T, D]) Mode() Mode[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller[T, D]) setMode(m Mode[T]) {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
}
