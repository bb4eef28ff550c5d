package planner

import (
	"math"
	"slices"
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

// UpcomingLimit caps the upcoming homework list
const UpcomingLimit = 5

// TodayAgenda returns the todos dated today, in stored order
func TodayAgenda(doc domain.Document, today string) []domain.TodoItem {
	agenda := []domain.TodoItem{}
	for _, t := range doc.Todos {
		if t.Date == today {
			agenda = append(agenda, t)
		}
	}
	return agenda
}

// UpcomingHomework returns the first UpcomingLimit open assignments by due date.
// Due dates compare as plain strings, so an item with no due date sorts first.
func UpcomingHomework(doc domain.Document) []domain.HomeworkItem {
	open := []domain.HomeworkItem{}
	for _, h := range doc.Homework {
		if !h.Done {
			open = append(open, h)
		}
	}
	slices.SortStableFunc(open, func(a, b domain.HomeworkItem) int {
		return strings.Compare(a.Due, b.Due)
	})
	if len(open) > UpcomingLimit {
		open = open[:UpcomingLimit]
	}
	return open
}

// DaySchedule is the timetable of one school day
type DaySchedule struct {
	Day     domain.Weekday         `json:"day"`
	Entries []domain.ScheduleEntry `json:"entries"`
}

// ScheduleByDay buckets the timetable into the six school days in week order,
// each sorted by start time. Entries whose day is not a school day are left out.
func ScheduleByDay(doc domain.Document) []DaySchedule {
	days := make([]DaySchedule, len(domain.Weekdays))
	index := make(map[domain.Weekday]int, len(domain.Weekdays))
	for i, d := range domain.Weekdays {
		days[i] = DaySchedule{Day: d, Entries: []domain.ScheduleEntry{}}
		index[d] = i
	}

	for _, e := range doc.Schedule {
		i, ok := index[e.Day]
		if !ok {
			continue
		}
		days[i].Entries = append(days[i].Entries, e)
	}

	for i := range days {
		slices.SortStableFunc(days[i].Entries, func(a, b domain.ScheduleEntry) int {
			return strings.Compare(a.Start, b.Start)
		})
	}
	return days
}

// BookProgress is pagesRead as a percentage of totalPages. It is not clamped,
// a book read past its page count reports more than 100.
func BookProgress(b domain.Book) float64 {
	if b.TotalPages <= 0 {
		return 0
	}
	return float64(b.PagesRead) / float64(b.TotalPages) * 100
}

// DisplayProgress is BookProgress clamped to [0, 100] and rounded
func DisplayProgress(b domain.Book) int {
	p := BookProgress(b)
	p = math.Max(0, math.Min(100, p))
	return int(math.Round(p))
}

// Summary holds the dashboard counters
type Summary struct {
	GoalsDone       int `json:"goalsDone"`
	GoalsTotal      int `json:"goalsTotal"`
	PendingHomework int `json:"pendingHomework"`
	TodayTodos      int `json:"todayTodos"`
	BooksReading    int `json:"booksReading"`
}

// Summarize recomputes the dashboard counters from scratch
func Summarize(doc domain.Document, today string) Summary {
	s := Summary{GoalsTotal: len(doc.Goals)}
	for _, g := range doc.Goals {
		if g.Done {
			s.GoalsDone++
		}
	}
	for _, h := range doc.Homework {
		if !h.Done {
			s.PendingHomework++
		}
	}
	s.TodayTodos = len(TodayAgenda(doc, today))
	for _, b := range doc.Books {
		if b.Status == domain.BookReading {
			s.BooksReading++
		}
	}
	return s
}
