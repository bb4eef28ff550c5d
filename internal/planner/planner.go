// Package planner holds the pure document transitions, the derived views and
// the state container that owns the current document.
package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/pbaille/planner/internal/domain"
)

// Planner stamps new records with ids and dates. Transitions that need neither
// are plain functions.
type Planner struct {
	newID func() string
	now   func() time.Time
}

// Option configures a Planner
type Option func(*Planner)

// WithClock overrides the time source used for createdAt and "today"
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithIDs overrides the id generator
func WithIDs(newID func() string) Option {
	return func(p *Planner) { p.newID = newID }
}

// New creates a Planner generating UUIDs against the wall clock
func New(opts ...Option) *Planner {
	p := &Planner{
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Now returns the planner's current time
func (p *Planner) Now() time.Time {
	return p.now()
}

// Today returns the current date as YYYY-MM-DD
func (p *Planner) Today() string {
	return domain.DateOf(p.now())
}

// prepend returns a new slice with v in front of items; items is left untouched
func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

// patch returns a copy of items with fn applied to the first element whose id matches.
// The original slice is returned as is when nothing matches.
func patch[T any](items []T, idOf func(T) string, id string, fn func(*T)) []T {
	for i := range items {
		if idOf(items[i]) != id {
			continue
		}
		out := make([]T, len(items))
		copy(out, items)
		fn(&out[i])
		return out
	}
	return items
}

// without returns a copy of items lacking the element with id
func without[T any](items []T, idOf func(T) string, id string) []T {
	for i := range items {
		if idOf(items[i]) != id {
			continue
		}
		out := make([]T, 0, len(items)-1)
		out = append(out, items[:i]...)
		return append(out, items[i+1:]...)
	}
	return items
}
