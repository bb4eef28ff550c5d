package planner

import (
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

// TodoDraft is the user input for an extracurricular to-do.
// An empty Date means today.
type TodoDraft struct {
	Date     string
	Text     string
	Category string
}

func todoID(t domain.TodoItem) string { return t.ID }

func (p *Planner) AddTodo(doc domain.Document, d TodoDraft) (domain.Document, string) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return doc, ""
	}

	date := strings.TrimSpace(d.Date)
	if date == "" {
		date = p.Today()
	}

	t := domain.TodoItem{
		ID:       p.newID(),
		Date:     date,
		Text:     text,
		Category: domain.ParseTodoCategory(d.Category),
	}
	doc.Todos = prepend(doc.Todos, t)
	return doc, t.ID
}

func ToggleTodo(doc domain.Document, id string) domain.Document {
	doc.Todos = patch(doc.Todos, todoID, id, func(t *domain.TodoItem) { t.Done = !t.Done })
	return doc
}

func RemoveTodo(doc domain.Document, id string) domain.Document {
	doc.Todos = without(doc.Todos, todoID, id)
	return doc
}
