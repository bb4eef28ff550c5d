package planner

import (
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

// ClassDraft is the user input for a timetable slot
type ClassDraft struct {
	Subject  string
	Day      string
	Start    string
	End      string
	Location string
}

func classID(e domain.ScheduleEntry) string { return e.ID }

// AddClass appends a schedule entry. Times are stored as given; no range check.
func (p *Planner) AddClass(doc domain.Document, d ClassDraft) (domain.Document, string) {
	subject := strings.TrimSpace(d.Subject)
	if subject == "" {
		return doc, ""
	}

	e := domain.ScheduleEntry{
		ID:       p.newID(),
		Subject:  subject,
		Day:      domain.ParseWeekday(d.Day),
		Start:    strings.TrimSpace(d.Start),
		End:      strings.TrimSpace(d.End),
		Location: strings.TrimSpace(d.Location),
	}
	out := make([]domain.ScheduleEntry, 0, len(doc.Schedule)+1)
	out = append(out, doc.Schedule...)
	doc.Schedule = append(out, e)
	return doc, e.ID
}

// RemoveClass deletes the schedule entry with id
func RemoveClass(doc domain.Document, id string) domain.Document {
	doc.Schedule = without(doc.Schedule, classID, id)
	return doc
}
