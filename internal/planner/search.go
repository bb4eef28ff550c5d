package planner

import (
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

// Collection names a record set of the document
type Collection string

const (
	CollectionGoals    Collection = "goals"
	CollectionSchedule Collection = "schedule"
	CollectionHomework Collection = "homework"
	CollectionTodos    Collection = "todos"
	CollectionBooks    Collection = "books"
)

// Match is one search hit
type Match struct {
	Collection Collection `json:"collection"`
	ID         string     `json:"id"`
	Label      string     `json:"label"`
}

// Search performs a case-insensitive substring search over the text fields
// of every collection. A blank query matches nothing.
func Search(doc domain.Document, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	matches := []Match{}
	if q == "" {
		return matches
	}

	hit := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	for _, g := range doc.Goals {
		if hit(g.Text, string(g.Category)) {
			matches = append(matches, Match{CollectionGoals, g.ID, g.Text})
		}
	}
	for _, e := range doc.Schedule {
		if hit(e.Subject, e.Location) {
			matches = append(matches, Match{CollectionSchedule, e.ID, e.Subject})
		}
	}
	for _, h := range doc.Homework {
		if hit(h.Title, h.Subject, h.Notes) {
			matches = append(matches, Match{CollectionHomework, h.ID, h.Title})
		}
	}
	for _, t := range doc.Todos {
		if hit(t.Text, string(t.Category)) {
			matches = append(matches, Match{CollectionTodos, t.ID, t.Text})
		}
	}
	for _, b := range doc.Books {
		if hit(b.Title, b.Author, b.Genre, b.Comment) {
			matches = append(matches, Match{CollectionBooks, b.ID, b.Title})
		}
	}
	return matches
}
