package planner

import (
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

// HomeworkDraft is the user input for an assignment
type HomeworkDraft struct {
	Title   string
	Subject string
	Due     string
	Notes   string
}

func homeworkID(h domain.HomeworkItem) string { return h.ID }

func (p *Planner) AddHomework(doc domain.Document, d HomeworkDraft) (domain.Document, string) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return doc, ""
	}

	h := domain.HomeworkItem{
		ID:        p.newID(),
		Title:     title,
		Subject:   strings.TrimSpace(d.Subject),
		Due:       strings.TrimSpace(d.Due),
		Notes:     d.Notes,
		CreatedAt: p.Today(),
	}
	doc.Homework = prepend(doc.Homework, h)
	return doc, h.ID
}

func ToggleHomework(doc domain.Document, id string) domain.Document {
	doc.Homework = patch(doc.Homework, homeworkID, id, func(h *domain.HomeworkItem) { h.Done = !h.Done })
	return doc
}

func RemoveHomework(doc domain.Document, id string) domain.Document {
	doc.Homework = without(doc.Homework, homeworkID, id)
	return doc
}
