package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

var (
	// ErrNotFound is returned when no record id starts with the given prefix
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when several record ids start with the given prefix
	ErrAmbiguous = errors.New("ambiguous id")
)

// MatchID resolves an id or id prefix against ids. An exact match always wins.
func MatchID(ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("match id: %w", ErrNotFound)
	}

	var found []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			found = append(found, id)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("match id %s: %w", prefix, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("match id %s (%d candidates): %w", prefix, len(found), ErrAmbiguous)
	}
}

// IDs returns the record ids of collection c in stored order
func IDs(doc domain.Document, c Collection) []string {
	var ids []string
	switch c {
	case CollectionGoals:
		for _, g := range doc.Goals {
			ids = append(ids, g.ID)
		}
	case CollectionSchedule:
		for _, e := range doc.Schedule {
			ids = append(ids, e.ID)
		}
	case CollectionHomework:
		for _, h := range doc.Homework {
			ids = append(ids, h.ID)
		}
	case CollectionTodos:
		for _, t := range doc.Todos {
			ids = append(ids, t.ID)
		}
	case CollectionBooks:
		for _, b := range doc.Books {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// Resolve matches prefix against the ids of collection c
func Resolve(doc domain.Document, c Collection, prefix string) (string, error) {
	id, err := MatchID(IDs(doc, c), prefix)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c, err)
	}
	return id, nil
}

// ShortID is the display form of an id
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
