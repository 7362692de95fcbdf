// Package listsync keeps a local list in sync with one remote collection of
// the résumé backend. Every mutation is followed by a full reload; the
// server is the source of truth.
package listsync

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Tiliavir/curriculo/internal/apiclient"
	"github.com/Tiliavir/curriculo/internal/model"
)

// API is the subset of *apiclient.Client the controller needs.
type API interface {
	List(ctx context.Context, res apiclient.Resource, out any) error
	Create(ctx context.Context, res apiclient.Resource, body any) error
	Update(ctx context.Context, res apiclient.Resource, id string, body any) error
	Delete(ctx context.Context, res apiclient.Resource, id string) error
}

// Notifier shows a modal message to the user.
type Notifier interface {
	Alert(title, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, message string)

func (f NotifierFunc) Alert(title, message string) { f(title, message) }

// Alert titles.
const (
	TitleSuccess    = "Success!"
	TitleError      = "Error"
	TitleLoadFailed = "Load failed"
)

// Messages are the user-facing texts of one section. Blank fields fall back
// to generic wording.
type Messages struct {
	LoadFailed   string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
	Created      string
	Updated      string
	Deleted      string
}

func (m Messages) withDefaults() Messages {
	def := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	def(&m.LoadFailed, "Could not load the data.")
	def(&m.CreateFailed, "Could not save.")
	def(&m.UpdateFailed, "Could not update.")
	def(&m.DeleteFailed, "Could not delete.")
	def(&m.Created, "Item added.")
	def(&m.Updated, "Item updated.")
	def(&m.Deleted, "Item deleted.")
	return m
}

// Config describes one synchronised collection.
type Config[D any] struct {
	Resource apiclient.Resource
	// Encode maps a draft to the request body, injecting the owner id.
	Encode   func(draft D, ownerID string) any
	Messages Messages
}

// Controller owns the local copy of a remote collection of T, edited
// through drafts of type D.
//
// Concurrent loads share one GET. Each GET is numbered when issued and a
// response older than the last applied one is dropped, so an early request
// that resolves late cannot overwrite newer data. Mutations are serialised
// and each is followed by a fresh GET.
type Controller[T model.Record, D any] struct {
	api    API
	cfg    Config[D]
	notify Notifier
	logger *slog.Logger

	flights singleflight.Group
	mutMu   sync.Mutex

	mu      sync.Mutex
	items   []T
	mode    Mode[T]
	loading int
	issued  uint64
	applied uint64
	loaded  bool
}

// New creates a controller. A nil logger uses slog.Default.
func New[T model.Record, D any](api API, cfg Config[D], notify Notifier, logger *slog.Logger) *Controller[T, D] {
	if logger == nil {
		logger = slog.Default()
	}
	if notify == nil {
		notify = NotifierFunc(func(string, string) {})
	}
	cfg.Messages = cfg.Messages.withDefaults()
	return &Controller[T, D]{
		api:    api,
		cfg:    cfg,
		notify: notify,
		logger: logger.With("resource", cfg.Resource.Path),
	}
}

// Resource returns the collection this controller syncs.
func (c *Controller[T, D]) Resource() apiclient.Resource { return c.cfg.Resource }

// Items returns a copy of the current list.
func (c *Controller[T, D]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the item with id from the current list.
func (c *Controller[T, D]) Find(id model.ID) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// IsLoading reports whether any operation is in flight.
func (c *Controller[T, D]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading > 0
}

// Loaded reports whether at least one load has succeeded.
func (c *Controller[T, D]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Load fetches the collection and replaces the local list. A failed load
// keeps the previous list rather than clearing it first, and shows one
// alert. Callers that arrive while a GET is in flight join it instead of
// issuing another.
//
// The shared GET does not inherit the cancellation of the caller that
// started it; it ends with the client's request timeout. A caller whose own
// ctx is done returns false at once without an alert, and the others keep
// waiting.
func (c *Controller[T, D]) Load(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	c.begin()
	defer c.end()

	ch := c.flights.DoChan(c.flightKey(), func() (any, error) {
		return nil, c.fetch(context.WithoutCancel(ctx))
	})
	select {
	case r := <-ch:
		return r.Err == nil
	case <-ctx.Done():
		c.logger.Debug("load abandoned", "err", ctx.Err())
		return false
	}
}

func (c *Controller[T, D]) fetch(ctx context.Context) error {
	c.begin()
	defer c.end()
	seq := c.issue()
	var items []T
	if err := c.api.List(ctx, c.cfg.Resource, &items); err != nil {
		c.fail(apiclient.OpList, err, TitleLoadFailed, c.cfg.Messages.LoadFailed)
		return err
	}
	c.apply(seq, items)
	return nil
}

// Create posts draft. On success the list is reloaded and the add mode, if
// active, is left.
func (c *Controller[T, D]) Create(ctx context.Context, draft D) bool {
	c.begin()
	defer c.end()
	c.mutMu.Lock()
	defer c.mutMu.Unlock()

	body := c.cfg.Encode(draft, c.cfg.Resource.OwnerID)
	if err := c.api.Create(ctx, c.cfg.Resource, body); err != nil {
		c.fail(apiclient.OpCreate, err, TitleError, c.cfg.Messages.CreateFailed)
		return false
	}
	c.notify.Alert(TitleSuccess, c.cfg.Messages.Created)
	c.mu.Lock()
	if c.mode.kind == Adding {
		c.mode = viewing[T]()
	}
	c.mu.Unlock()
	c.reload(ctx)
	return true
}

// Update replaces record id with draft. On success the editing selection is
// cleared and the list reloaded.
func (c *Controller[T, D]) Update(ctx context.Context, id model.ID, draft D) bool {
	c.begin()
	defer c.end()
	c.mutMu.Lock()
	defer c.mutMu.Unlock()

	body := c.cfg.Encode(draft, c.cfg.Resource.OwnerID)
	if err := c.api.Update(ctx, c.cfg.Resource, id.String(), body); err != nil {
		c.fail(apiclient.OpUpdate, err, TitleError, c.cfg.Messages.UpdateFailed)
		return false
	}
	c.notify.Alert(TitleSuccess, c.cfg.Messages.Updated)
	c.setMode(viewing[T]())
	c.reload(ctx)
	return true
}

// Delete removes record id. Whatever the outcome the controller leaves
// delete mode.
func (c *Controller[T, D]) Delete(ctx context.Context, id model.ID) bool {
	c.begin()
	defer c.end()
	defer c.setMode(viewing[T]())
	c.mutMu.Lock()
	defer c.mutMu.Unlock()

	if err := c.api.Delete(ctx, c.cfg.Resource, id.String()); err != nil {
		c.fail(apiclient.OpDelete, err, TitleError, c.cfg.Messages.DeleteFailed)
		return false
	}
	c.notify.Alert(TitleSuccess, c.cfg.Messages.Deleted)
	c.reload(ctx)
	return true
}

// ConfirmDelete deletes the item awaiting confirmation.
func (c *Controller[T, D]) ConfirmDelete(ctx context.Context) bool {
	m := c.Mode()
	item, ok := m.Item()
	if !ok || m.Kind() != ConfirmingDelete {
		return false
	}
	return c.Delete(ctx, item.RecordID())
}

// reload issues a fresh GET that does not join a flight started before the
// mutation.
func (c *Controller[T, D]) reload(ctx context.Context) {
	c.flights.Forget(c.flightKey())
	c.Load(ctx)
}

func (c *Controller[T, D]) flightKey() string {
	return c.cfg.Resource.Path
}

func (c *Controller[T, D]) issue() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

func (c *Controller[T, D]) apply(seq uint64, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.applied {
		c.logger.Debug("dropping stale list response", "seq", seq, "applied", c.applied)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.applied = seq
	c.loaded = true
}

func (c *Controller[T, D]) begin() {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()
}

func (c *Controller[T, D]) end() {
	c.mu.Lock()
	c.loading--
	c.mu.Unlock()
}

// fail logs err and shows it as one alert. Cancellation is the caller's own
// doing and is not shown.
func (c *Controller[T, D]) fail(op apiclient.Op, err error, title, fallback string) {
	if errors.Is(err, context.Canceled) {
		c.logger.Debug("operation canceled", "op", op)
		return
	}
	c.logger.Warn("operation failed", "op", op, "err", err)
	c.notify.Alert(title, apiclient.UserMessage(err, fallback))
}
