package domain

import (
	"strings"
	"time"
)

// DateLayout is the ISO date format used for every date field
const DateLayout = "2006-01-02"

// DateOf formats t as an ISO date in t's location
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// GoalCategory groups goals
type GoalCategory string

const (
	GoalGeneral  GoalCategory = "General"
	GoalStudy    GoalCategory = "Study"
	GoalHealth   GoalCategory = "Health"
	GoalPersonal GoalCategory = "Personal"
	GoalCareer   GoalCategory = "Career"
)

// GoalCategories lists goal categories in display order
var GoalCategories = []GoalCategory{GoalGeneral, GoalStudy, GoalHealth, GoalPersonal, GoalCareer}

// ParseGoalCategory returns the canonical spelling of s, General when s is empty,
// and s unchanged when it names no known category.
func ParseGoalCategory(s string) GoalCategory {
	return GoalCategory(canonical(s, string(GoalGeneral), GoalCategories))
}

// TodoCategory groups extracurricular to-dos
type TodoCategory string

const (
	TodoGeneral   TodoCategory = "General"
	TodoSport     TodoCategory = "Sport"
	TodoMusic     TodoCategory = "Music"
	TodoArt       TodoCategory = "Art"
	TodoClub      TodoCategory = "Club"
	TodoVolunteer TodoCategory = "Volunteer"
)

var TodoCategories = []TodoCategory{TodoGeneral, TodoSport, TodoMusic, TodoArt, TodoClub, TodoVolunteer}

func ParseTodoCategory(s string) TodoCategory {
	return TodoCategory(canonical(s, string(TodoGeneral), TodoCategories))
}

// Weekday is a school day. Sunday is not part of the timetable.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Weekdays lists the six school days in week order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// ParseWeekday accepts full names or three-letter abbreviations in any case.
// Empty input defaults to Monday; unknown input is returned as given.
func ParseWeekday(s string) Weekday {
	t := strings.TrimSpace(s)
	if len(t) == 3 {
		for _, d := range Weekdays {
			if strings.EqualFold(string(d)[:3], t) {
				return d
			}
		}
	}
	return Weekday(canonical(t, string(Monday), Weekdays))
}

// Valid reports whether d is one of the six school days
func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// BookStatus is the reading state of a book
type BookStatus string

const (
	BookToRead   BookStatus = "to-read"
	BookReading  BookStatus = "reading"
	BookFinished BookStatus = "finished"
	BookDropped  BookStatus = "dropped"
)

var BookStatuses = []BookStatus{BookToRead, BookReading, BookFinished, BookDropped}

func ParseBookStatus(s string) BookStatus {
	return BookStatus(canonical(s, string(BookToRead), BookStatuses))
}

func canonical[T ~string](s, fallback string, known []T) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, k := range known {
		if strings.EqualFold(string(k), s) {
			return string(k)
		}
	}
	return s
}
