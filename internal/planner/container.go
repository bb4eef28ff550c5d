package planner

import (
	"context"
	"sync"

	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/logger"
)

// Transition computes a new document from the current one
type Transition func(domain.Document) domain.Document

// Listener is notified with the new document after every transition
type Listener func(domain.Document) error

// Container owns the current document. Transitions are applied one at a time
// and listeners run synchronously before Apply returns.
type Container struct {
	mu        sync.Mutex
	doc       domain.Document
	listeners []Listener
}

// NewContainer starts a container holding doc
func NewContainer(doc domain.Document) *Container {
	return &Container{doc: domain.Normalize(doc)}
}

// Subscribe registers l for every subsequent transition
func (c *Container) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Document returns the current document
func (c *Container) Document() domain.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// Apply runs t against the current document, stores the result and notifies
// listeners. The returned error is the first listener failure of this
// transition; it does not undo the transition.
func (c *Container) Apply(t Transition) (domain.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = t(c.doc)
	return c.doc, c.notify()
}

// Replace substitutes doc wholesale, without merging against the current state
func (c *Container) Replace(doc domain.Document) (domain.Document, error) {
	return c.Apply(func(domain.Document) domain.Document { return domain.Normalize(doc) })
}

func (c *Container) notify() error {
	var first error
	for _, l := range c.listeners {
		if err := l(c.doc); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Saver persists a whole document
type Saver interface {
	Save(ctx context.Context, doc domain.Document) error
}

// PersistTo returns a listener saving every new document to s. Failures are
// logged and handed back to the container; the in-memory document stays authoritative.
func PersistTo(ctx context.Context, s Saver, log *logger.Logger) Listener {
	return func(doc domain.Document) error {
		if err := s.Save(ctx, doc); err != nil {
			log.Warn("persist document failed", "error", err)
			return err
		}
		log.Debug("persisted document",
			"goals", len(doc.Goals),
			"schedule", len(doc.Schedule),
			"homework", len(doc.Homework),
			"todos", len(doc.Todos),
			"books", len(doc.Books),
		)
		return nil
	}
}
