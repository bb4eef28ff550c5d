package planner

import (
	"math"
	"testing"

	"github.com/pbaille/planner/internal/domain"
)

func TestBookProgress(t *testing.T) {
	tests := []struct {
		name       string
		read, tot  domain.Count
		want       float64
		wantRender int
	}{
		{name: "quarter", read: 50, tot: 200, want: 25.0, wantRender: 25},
		{name: "no total pages", read: 10, tot: 0, want: 0, wantRender: 0},
		{name: "read past the end", read: 300, tot: 200, want: 150, wantRender: 100},
		{name: "rounds to nearest", read: 1, tot: 3, want: 100.0 / 3, wantRender: 33},
		{name: "rounds half up", read: 1, tot: 8, want: 12.5, wantRender: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := domain.Book{PagesRead: tt.read, TotalPages: tt.tot}
			if got := BookProgress(b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("BookProgress = %v, want %v", got, tt.want)
			}
			if got := DisplayProgress(b); got != tt.wantRender {
				t.Errorf("DisplayProgress = %d, want %d", got, tt.wantRender)
			}
		})
	}
}

func TestScheduleByDay_SortsByStart(t *testing.T) {
	doc := domain.Default()
	doc.Schedule = []domain.ScheduleEntry{
		{ID: "1", Subject: "Math", Day: domain.Monday, Start: "09:00"},
		{ID: "2", Subject: "Art", Day: domain.Monday, Start: "08:00"},
		{ID: "3", Subject: "PE", Day: domain.Saturday, Start: "11:00"},
		{ID: "4", Subject: "Nap", Day: "Sunday", Start: "13:00"},
	}

	days := ScheduleByDay(doc)
	if len(days) != 6 {
		t.Fatalf("got %d buckets, want 6", len(days))
	}
	for i, d := range domain.Weekdays {
		if days[i].Day != d {
			t.Fatalf("bucket %d = %q, want %q", i, days[i].Day, d)
		}
	}

	monday := days[0].Entries
	if len(monday) != 2 || monday[0].Subject != "Art" || monday[1].Subject != "Math" {
		t.Fatalf("monday = %+v, want Art before Math", monday)
	}
	if len(days[5].Entries) != 1 || days[5].Entries[0].Subject != "PE" {
		t.Fatalf("saturday = %+v", days[5].Entries)
	}

	total := 0
	for _, d := range days {
		total += len(d.Entries)
	}
	if total != 3 {
		t.Fatalf("entries bucketed = %d, want 3 (Sunday is not a school day)", total)
	}
	if len(doc.Schedule) != 4 || doc.Schedule[0].Subject != "Math" {
		t.Fatalf("grouping must not reorder the stored schedule")
	}
}

func TestUpcomingHomework_LexicographicDueOrder(t *testing.T) {
	doc := domain.Default()
	doc.Homework = []domain.HomeworkItem{
		{ID: "may", Due: "2025-05-01"},
		{ID: "undated", Due: ""},
		{ID: "march", Due: "2025-03-10"},
		{ID: "done", Due: "2025-01-01", Done: true},
	}

	got := UpcomingHomework(doc)

	// Due dates compare as strings: "" is smaller than any date, so an undated
	// item comes first. This ordering is kept on purpose.
	want := []string{"undated", "march", "may"}
	if len(got) != len(want) {
		t.Fatalf("upcoming = %+v, want %v", got, want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("upcoming[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestUpcomingHomework_LimitAndStability(t *testing.T) {
	doc := domain.Default()
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		doc.Homework = append(doc.Homework, domain.HomeworkItem{ID: id, Due: "2025-04-01"})
	}

	got := UpcomingHomework(doc)
	if len(got) != UpcomingLimit {
		t.Fatalf("upcoming len = %d, want %d", len(got), UpcomingLimit)
	}
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		if got[i].ID != id {
			t.Fatalf("equal dues must keep stored order, got %q at %d", got[i].ID, i)
		}
	}
}

func TestTodayAgenda(t *testing.T) {
	doc := domain.Default()
	doc.Todos = []domain.TodoItem{
		{ID: "1", Date: "2025-01-01", Text: "Chess"},
		{ID: "2", Date: "2025-01-02", Text: "Swim"},
		{ID: "3", Date: "2025-01-01", Text: "Piano"},
	}

	on1 := TodayAgenda(doc, "2025-01-01")
	if len(on1) != 2 || on1[0].ID != "1" || on1[1].ID != "3" {
		t.Fatalf("agenda on 2025-01-01 = %+v", on1)
	}

	on2 := TodayAgenda(doc, "2025-01-02")
	for _, td := range on2 {
		if td.Date == "2025-01-01" {
			t.Fatalf("todo dated 2025-01-01 included on 2025-01-02")
		}
	}
	if len(on2) != 1 {
		t.Fatalf("agenda on 2025-01-02 = %+v", on2)
	}

	if got := TodayAgenda(doc, "2030-01-01"); got == nil || len(got) != 0 {
		t.Fatalf("empty agenda must be an empty slice, got %#v", got)
	}
}

func TestSummarize(t *testing.T) {
	doc := domain.Default()
	doc.Goals = []domain.Goal{{ID: "1", Done: true}, {ID: "2"}, {ID: "3", Done: true}}
	doc.Homework = []domain.HomeworkItem{{ID: "1"}, {ID: "2", Done: true}, {ID: "3"}}
	doc.Todos = []domain.TodoItem{{ID: "1", Date: "2025-01-01"}, {ID: "2", Date: "2025-01-03"}}
	doc.Books = []domain.Book{{ID: "1", Status: domain.BookReading}, {ID: "2", Status: domain.BookFinished}, {ID: "3", Status: domain.BookReading}}

	got := Summarize(doc, "2025-01-01")
	want := Summary{GoalsDone: 2, GoalsTotal: 3, PendingHomework: 2, TodayTodos: 1, BooksReading: 2}
	if got != want {
		t.Fatalf("summary = %+v, want %+v", got, want)
	}
}

func TestSearch(t *testing.T) {
	doc := domain.Default()
	doc.Goals = []domain.Goal{{ID: "g", Text: "Win the math olympiad"}}
	doc.Schedule = []domain.ScheduleEntry{{ID: "s", Subject: "Math", Day: domain.Monday}}
	doc.Homework = []domain.HomeworkItem{{ID: "h", Title: "Worksheet", Notes: "math problems 1-10"}}
	doc.Todos = []domain.TodoItem{{ID: "t", Text: "Robotics club"}}
	doc.Books = []domain.Book{{ID: "b", Title: "Flatland", Genre: "Mathematics"}}

	got := Search(doc, "  MATH ")
	want := []Match{
		{CollectionGoals, "g", "Win the math olympiad"},
		{CollectionSchedule, "s", "Math"},
		{CollectionHomework, "h", "Worksheet"},
		{CollectionBooks, "b", "Flatland"},
	}
	if len(got) != len(want) {
		t.Fatalf("search = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("search[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if got := Search(doc, "   "); len(got) != 0 {
		t.Fatalf("blank query matched %+v", got)
	}
}
