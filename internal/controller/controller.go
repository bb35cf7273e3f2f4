// Package controller owns the task collection and every mutation applied to
// it. A Controller is not safe for concurrent use: callers drive it from a
// single event loop.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

// StorageKey is the key the collection is saved under.
const StorageKey = "todoTasks"

const DeletePrompt = "Are you sure you want to delete this task?"

func ClearCompletedPrompt(count int) string {
	return fmt.Sprintf("Delete %d completed task(s)?", count)
}

const maxIDAttempts = 16

var (
	ErrConfirmationPending   = errors.New("controller: confirmation pending")
	ErrNoPendingConfirmation = errors.New("controller: no pending confirmation")
	ErrPersist               = errors.New("controller: persist failed")
	ErrIDExhausted           = errors.New("controller: could not generate a unique task id")
)

type Option func(*Controller)

func WithConfirmer(c Confirmer) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.confirm = c
		}
	}
}

func WithRenderer(r Renderer) Option {
	return func(ctl *Controller) {
		if r != nil {
			ctl.render = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(ctl *Controller) {
		if now != nil {
			ctl.now = now
		}
	}
}

func WithIDGenerator(next func() string) Option {
	return func(ctl *Controller) {
		if next != nil {
			ctl.newID = next
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(ctl *Controller) {
		if l != nil {
			ctl.logger = l
		}
	}
}

// WithSeed controls whether example tasks are written when nothing has been
// saved yet.
func WithSeed(enabled bool) Option {
	return func(ctl *Controller) { ctl.seed = enabled }
}

// WithFilter sets the filter in effect for the first render. Unknown filters
// are ignored.
func WithFilter(f model.Filter) Option {
	return func(ctl *Controller) {
		if f.IsValid() {
			ctl.filter = f
		}
	}
}

func WithKey(key string) Option {
	return func(ctl *Controller) {
		if key != "" {
			ctl.key = key
		}
	}
}

type Controller struct {
	store   storage.Store
	key     string
	confirm Confirmer
	render  Renderer
	now     func() time.Time
	newID   func() string
	logger  *log.Logger
	seed    bool

	tasks     []model.Task
	filter    model.Filter
	editingID string
	pending   *Pending
}

// New loads the saved collection from store and renders once. Missing or
// unreadable saved state yields an empty (or seeded) list, never an error.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Controller, error) {
	if store == nil {
		return nil, errors.New("controller: nil store")
	}
	c := &Controller{
		store:   store,
		key:     StorageKey,
		confirm: NeverConfirm,
		render:  nopRenderer{},
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  log.New(io.Discard, "", 0),
		filter:  model.FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.load(ctx)
	c.notify()
	return c, nil
}

func (c *Controller) load(ctx context.Context) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.logger.Printf("warning: read saved tasks: %v", err)
		return
	}
	if !ok {
		if c.seed {
			c.tasks = exampleTasks(c.now().UTC(), c.newID)
			if err := c.persist(ctx); err != nil {
				c.logger.Printf("warning: save example tasks: %v", err)
			}
		}
		return
	}
	tasks, dropped, err := DecodeTasks(raw)
	if err != nil {
		c.logger.Printf("warning: saved tasks unreadable, starting empty: %v", err)
		return
	}
	if len(dropped) > 0 {
		c.logger.Printf("warning: dropped %d invalid or duplicate task(s): %q", len(dropped), dropped)
	}
	c.tasks = tasks
}

// Add inserts a new task at the front of the list.
func (c *Controller) Add(ctx context.Context, raw string) (model.Task, error) {
	if c.pending != nil {
		return model.Task{}, ErrConfirmationPending
	}
	text, err := model.NormalizeText(raw)
	if err != nil {
		return model.Task{}, err
	}
	id, err := c.uniqueID()
	if err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:        id,
		Text:      text,
		CreatedAt: c.now().UTC(),
	}
	c.tasks = slices.Insert(c.tasks, 0, task)
	err = c.persist(ctx)
	c.notify()
	return task, err
}

// Toggle flips completion on the task with id. An unknown id is a no-op and
// reports found=false.
func (c *Controller) Toggle(ctx context.Context, id string) (bool, error) {
	if c.pending != nil {
		return false, ErrConfirmationPending
	}
	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c.tasks[i].Completed = !c.tasks[i].Completed
	err := c.persist(ctx)
	c.notify()
	return true, err
}

// BeginEdit opens id for inline editing. It does not check that id exists.
func (c *Controller) BeginEdit(id string) error {
	if c.pending != nil {
		return ErrConfirmationPending
	}
	c.editingID = id
	c.notify()
	return nil
}

// CommitEdit replaces the text of id. Empty text or an unknown id abandon
// the edit instead.
func (c *Controller) CommitEdit(ctx context.Context, id, raw string) error {
	if c.pending != nil {
		return ErrConfirmationPending
	}
	text, err := model.NormalizeText(raw)
	if err != nil {
		return c.CancelEdit()
	}
	i := c.indexOf(id)
	if i < 0 {
		return c.CancelEdit()
	}
	c.tasks[i].Text = text
	c.editingID = ""
	err = c.persist(ctx)
	c.notify()
	return err
}

func (c *Controller) CancelEdit() error {
	if c.pending != nil {
		return ErrConfirmationPending
	}
	c.editingID = ""
	c.notify()
	return nil
}

// Delete asks for confirmation and removes id when granted.
func (c *Controller) Delete(ctx context.Context, id string) error {
	p, err := c.RequestDelete(id)
	if err != nil {
		return err
	}
	_, err = c.Resolve(ctx, c.confirm.Ask(p.Prompt))
	return err
}

// ClearCompleted asks for confirmation and removes every completed task when
// granted. Nothing is asked when no task is completed.
func (c *Controller) ClearCompleted(ctx context.Context) (int, error) {
	p, err := c.RequestClearCompleted()
	if err != nil || p == nil {
		return 0, err
	}
	return c.Resolve(ctx, c.confirm.Ask(p.Prompt))
}

func (c *Controller) SetFilter(f model.Filter) error {
	if c.pending != nil {
		return ErrConfirmationPending
	}
	if !f.IsValid() {
		return &model.ValidationError{Code: model.ErrCodeInvalidFilter, Message: fmt.Sprintf("unknown filter %q", f)}
	}
	c.filter = f
	c.notify()
	return nil
}

func (c *Controller) SetFilterString(raw string) error {
	f, err := model.ParseFilter(raw)
	if err != nil {
		return err
	}
	return c.SetFilter(f)
}

// FilteredView returns a copy of the tasks visible under the current filter.
func (c *Controller) FilteredView() []model.Task {
	return model.Apply(c.filter, c.tasks)
}

func (c *Controller) Statistics() model.Statistics {
	return model.ComputeStatistics(c.tasks)
}

// Tasks returns a copy of the whole collection.
func (c *Controller) Tasks() []model.Task {
	return slices.Clone(c.tasks)
}

func (c *Controller) Filter() model.Filter { return c.filter }

func (c *Controller) EditingID() string { return c.editingID }

func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		View:      c.FilteredView(),
		Filter:    c.filter,
		EditingID: c.editingID,
		Stats:     c.Statistics(),
	}
	if c.pending != nil {
		s.Prompt = c.pending.Prompt
	}
	return s
}

func (c *Controller) indexOf(id string) int {
	return slices.IndexFunc(c.tasks, func(t model.Task) bool { return t.ID == id })
}

func (c *Controller) uniqueID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := c.newID()
		if id != "" && c.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (c *Controller) persist(ctx context.Context) error {
	raw, err := EncodeTasks(c.tasks)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		c.logger.Printf("warning: save tasks: %v", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (c *Controller) notify() {
	c.render.Render(c.Snapshot())
}
