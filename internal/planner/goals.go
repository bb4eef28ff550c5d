package planner

import (
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

// GoalDraft is the user input for a new goal
type GoalDraft struct {
	Text     string
	Category string
	Deadline string
}

func goalID(g domain.Goal) string { return g.ID }

// AddGoal prepends a new goal and returns its id. A draft with blank text
// leaves the document unchanged and yields an empty id.
func (p *Planner) AddGoal(doc domain.Document, d GoalDraft) (domain.Document, string) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return doc, ""
	}

	g := domain.Goal{
		ID:        p.newID(),
		Text:      text,
		Category:  domain.ParseGoalCategory(d.Category),
		Deadline:  strings.TrimSpace(d.Deadline),
		CreatedAt: p.Today(),
	}
	doc.Goals = prepend(doc.Goals, g)
	return doc, g.ID
}

// ToggleGoal flips done on the goal with id
func ToggleGoal(doc domain.Document, id string) domain.Document {
	doc.Goals = patch(doc.Goals, goalID, id, func(g *domain.Goal) { g.Done = !g.Done })
	return doc
}

// RemoveGoal deletes the goal with id
func RemoveGoal(doc domain.Document, id string) domain.Document {
	doc.Goals = without(doc.Goals, goalID, id)
	return doc
}
