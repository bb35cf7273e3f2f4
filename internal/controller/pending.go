package controller

import (
	"context"
	"slices"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type pendingKind int

const (
	pendingDelete pendingKind = iota + 1
	pendingClearCompleted
)

// Pending is a destructive action waiting for the user's answer. Until it is
// resolved every other mutation fails with ErrConfirmationPending.
type Pending struct {
	Prompt string
	kind   pendingKind
	id     string
}

// RequestDelete opens a confirmation for deleting id. The deletion happens
// in Resolve.
func (c *Controller) RequestDelete(id string) (*Pending, error) {
	if c.pending != nil {
		return nil, ErrConfirmationPending
	}
	c.pending = &Pending{Prompt: DeletePrompt, kind: pendingDelete, id: id}
	c.notify()
	p := *c.pending
	return &p, nil
}

// RequestClearCompleted opens a confirmation for removing completed tasks.
// It returns nil, nil when there is nothing to clear.
func (c *Controller) RequestClearCompleted() (*Pending, error) {
	if c.pending != nil {
		return nil, ErrConfirmationPending
	}
	count := c.Statistics().Completed
	if count == 0 {
		return nil, nil
	}
	c.pending = &Pending{Prompt: ClearCompletedPrompt(count), kind: pendingClearCompleted}
	c.notify()
	p := *c.pending
	return &p, nil
}

func (c *Controller) PendingPrompt() (string, bool) {
	if c.pending == nil {
		return "", false
	}
	return c.pending.Prompt, true
}

// Resolve closes the open confirmation, applying it when confirmed. It
// returns the number of tasks removed.
func (c *Controller) Resolve(ctx context.Context, confirmed bool) (int, error) {
	p := c.pending
	if p == nil {
		return 0, ErrNoPendingConfirmation
	}
	c.pending = nil
	if !confirmed {
		c.notify()
		return 0, nil
	}

	var removed int
	switch p.kind {
	case pendingDelete:
		removed = c.removeWhere(func(t model.Task) bool { return t.ID == p.id })
		if c.editingID == p.id {
			c.editingID = ""
		}
	case pendingClearCompleted:
		removed = c.removeWhere(func(t model.Task) bool { return t.Completed })
	}
	if c.editingID != "" && c.indexOf(c.editingID) < 0 {
		c.editingID = ""
	}
	err := c.persist(ctx)
	c.notify()
	return removed, err
}

func (c *Controller) removeWhere(del func(model.Task) bool) int {
	before := len(c.tasks)
	c.tasks = slices.DeleteFunc(c.tasks, del)
	return before - len(c.tasks)
}
