package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/logger"
	"github.com/pbaille/planner/internal/planner"
)

type failingSaver struct{}

func (failingSaver) Save(context.Context, domain.Document) error { return errors.New("disk full") }

func newTestServer(t *testing.T) (*planner.Container, http.Handler) {
	t.Helper()
	n := 0
	p := planner.New(
		planner.WithClock(func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }),
		planner.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	c := planner.NewContainer(domain.Default())
	return c, New(c, p, logger.Nop(), ":0").Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("CORS header = %q", got)
	}
}

func TestAdd_CreatesAndRejectsBlank(t *testing.T) {
	tests := []struct {
		path string
		good string
		bad  string
	}{
		{"/goals", `{"text":"Learn Go","category":"study"}`, `{"text":"  "}`},
		{"/schedule", `{"subject":"Math","day":"mon","start":"09:00","end":"10:00"}`, `{"subject":""}`},
		{"/homework", `{"title":"Essay","due":"2025-03-12"}`, `{"title":""}`},
		{"/todos", `{"text":"Practice piano","category":"Music"}`, `{}`},
		{"/books", `{"title":"Dune","totalPages":"412","rating":9}`, `{"author":"Herbert"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, h := newTestServer(t)

			rec := do(t, h, "POST", tt.path, tt.bad)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("blank add status = %d, want 400", rec.Code)
			}

			rec = do(t, h, "POST", tt.path, tt.good)
			if rec.Code != http.StatusCreated {
				t.Fatalf("add status = %d: %s", rec.Code, rec.Body.String())
			}
			resp := decode[struct {
				ID string `json:"id"`
			}](t, rec)
			if resp.ID != "id-1" {
				t.Fatalf("id = %q, want id-1", resp.ID)
			}

			doc := c.Document()
			total := len(doc.Goals) + len(doc.Schedule) + len(doc.Homework) + len(doc.Todos) + len(doc.Books)
			if total != 1 {
				t.Fatalf("document holds %d items, want 1", total)
			}
		})
	}
}

func TestAddBook_ClampsValues(t *testing.T) {
	c, h := newTestServer(t)
	do(t, h, "POST", "/books", `{"title":"Dune","pagesRead":-4,"totalPages":"412","rating":9}`)

	b := c.Document().Books[0]
	if b.PagesRead != 0 || b.TotalPages != 412 || b.Rating != 5 || b.Status != domain.BookToRead {
		t.Fatalf("book = %+v", b)
	}
}

func TestToggleAndRemove_ByPrefix(t *testing.T) {
	c, h := newTestServer(t)
	do(t, h, "POST", "/goals", `{"text":"Run 5k"}`)

	rec := do(t, h, "POST", "/goals/id-1/toggle", "")
	if rec.Code != http.StatusOK || !c.Document().Goals[0].Done {
		t.Fatalf("toggle status = %d, goal = %+v", rec.Code, c.Document().Goals)
	}

	rec = do(t, h, "DELETE", "/goals/id", "")
	if rec.Code != http.StatusOK || len(c.Document().Goals) != 0 {
		t.Fatalf("remove status = %d, goals = %+v", rec.Code, c.Document().Goals)
	}

	if rec := do(t, h, "DELETE", "/goals/id-1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("remove unknown status = %d, want 404", rec.Code)
	}
}

func TestToggle_AmbiguousPrefix(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, "POST", "/todos", `{"text":"a"}`)
	do(t, h, "POST", "/todos", `{"text":"b"}`)

	if rec := do(t, h, "POST", "/todos/id-/toggle", ""); rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestUpdateBook_Merges(t *testing.T) {
	c, h := newTestServer(t)
	do(t, h, "POST", "/books", `{"title":"Dune","author":"Herbert","totalPages":400}`)

	rec := do(t, h, "PATCH", "/books/id-1", `{"pagesRead":100,"status":"reading"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	b := c.Document().Books[0]
	if b.Title != "Dune" || b.Author != "Herbert" || b.PagesRead != 100 || b.Status != domain.BookReading {
		t.Fatalf("book = %+v", b)
	}
}

func TestViews(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, "POST", "/todos", `{"text":"Choir"}`)
	do(t, h, "POST", "/todos", `{"text":"Later","date":"2025-04-01"}`)
	do(t, h, "POST", "/homework", `{"title":"Lab report","due":"2025-03-11"}`)
	do(t, h, "POST", "/schedule", `{"subject":"Art","day":"Tuesday","start":"13:00","end":"14:00"}`)

	today := decode[struct {
		Date  string            `json:"date"`
		Todos []domain.TodoItem `json:"todos"`
	}](t, do(t, h, "GET", "/today", ""))
	if today.Date != "2025-03-10" || len(today.Todos) != 1 || today.Todos[0].Text != "Choir" {
		t.Fatalf("today = %+v", today)
	}

	upcoming := decode[struct {
		Homework []domain.HomeworkItem `json:"homework"`
	}](t, do(t, h, "GET", "/upcoming", ""))
	if len(upcoming.Homework) != 1 {
		t.Fatalf("upcoming = %+v", upcoming)
	}

	schedule := decode[struct {
		Days []planner.DaySchedule `json:"days"`
	}](t, do(t, h, "GET", "/schedule", ""))
	if len(schedule.Days) != len(domain.Weekdays) || len(schedule.Days[1].Entries) != 1 {
		t.Fatalf("schedule = %+v", schedule)
	}

	summary := decode[SummaryResponse](t, do(t, h, "GET", "/summary", ""))
	if summary.Counts.TodayTodos != 1 || summary.Counts.PendingHomework != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestSearch(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, "POST", "/books", `{"title":"The Hobbit"}`)

	if rec := do(t, h, "GET", "/search", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing q status = %d", rec.Code)
	}

	resp := decode[struct {
		Matches []planner.Match `json:"matches"`
	}](t, do(t, h, "GET", "/search?q=hobbit", ""))
	if len(resp.Matches) != 1 || resp.Matches[0].Collection != planner.CollectionBooks {
		t.Fatalf("matches = %+v", resp.Matches)
	}
}

func TestProfileAndTheme(t *testing.T) {
	c, h := newTestServer(t)

	rec := do(t, h, "PUT", "/profile", `{"name":" Ada ","year":"3"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d", rec.Code)
	}
	if p := c.Document().Profile; p.Name != "Ada" || p.Year != 3 {
		t.Fatalf("profile = %+v", p)
	}

	if rec := do(t, h, "PUT", "/theme", `{"theme":"toggle"}`); rec.Code != http.StatusOK || c.Document().Theme != domain.ThemeDark {
		t.Fatalf("toggle theme status = %d, theme = %q", rec.Code, c.Document().Theme)
	}
	if rec := do(t, h, "PUT", "/theme", `{"theme":"Light"}`); rec.Code != http.StatusOK || c.Document().Theme != domain.ThemeLight {
		t.Fatalf("set theme status = %d, theme = %q", rec.Code, c.Document().Theme)
	}
	if rec := do(t, h, "PUT", "/theme", `{"theme":"sepia"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown theme status = %d", rec.Code)
	}
}

func TestExportImport(t *testing.T) {
	c, h := newTestServer(t)
	do(t, h, "POST", "/goals", `{"text":"Read more"}`)

	rec := do(t, h, "GET", "/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="school-planner-2025-03-10.json"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	exported := rec.Body.String()

	do(t, h, "POST", "/goals", `{"text":"Extra"}`)
	if rec := do(t, h, "POST", "/import", exported); rec.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body.String())
	}
	if goals := c.Document().Goals; len(goals) != 1 || goals[0].Text != "Read more" {
		t.Fatalf("import must replace wholesale, goals = %+v", goals)
	}
}

func TestImport_RejectsInvalidAndKeepsState(t *testing.T) {
	c, h := newTestServer(t)
	do(t, h, "POST", "/goals", `{"text":"Keep me"}`)

	for _, body := range []string{"", "not json", "[1,2]", "null"} {
		if rec := do(t, h, "POST", "/import", body); rec.Code != http.StatusBadRequest {
			t.Errorf("import %q status = %d, want 400", body, rec.Code)
		}
	}
	if goals := c.Document().Goals; len(goals) != 1 {
		t.Fatalf("failed import changed state: %+v", goals)
	}
}

func TestPersistErrorHeader(t *testing.T) {
	c, h := newTestServer(t)
	c.Subscribe(planner.PersistTo(context.Background(), failingSaver{}, logger.Nop()))

	rec := do(t, h, "POST", "/goals", `{"text":"Unsaved"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, a failed save must not fail the request", rec.Code)
	}
	if got := rec.Header().Get("X-Planner-Persist-Error"); got != "disk full" {
		t.Fatalf("persist header = %q", got)
	}
	if len(c.Document().Goals) != 1 {
		t.Fatalf("goal lost after failed save")
	}
}

// failFirstSave rejects the first save and accepts every later one
type failFirstSave struct {
	mu     sync.Mutex
	failed bool
}

func (f *failFirstSave) Save(context.Context, domain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.failed {
		f.failed = true
		return errors.New("disk full")
	}
	return nil
}

func TestPersistErrorHeader_OnlyOnTheFailingRequest(t *testing.T) {
	c, h := newTestServer(t)
	c.Subscribe(planner.PersistTo(context.Background(), &failFirstSave{}, logger.Nop()))

	const n = 40
	headers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := do(t, h, "PUT", "/theme", `{"theme":"toggle"}`)
			headers <- rec.Header().Get("X-Planner-Persist-Error")
		}()
	}
	wg.Wait()
	close(headers)

	flagged := 0
	for hdr := range headers {
		if hdr != "" {
			flagged++
		}
	}
	if flagged != 1 {
		t.Fatalf("%d responses carry the persist error, want 1", flagged)
	}
}

func TestRun_LogsListenFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := New(planner.NewContainer(domain.Default()), planner.New(), logger.Wrap(zap.New(core)), "127.0.0.1:-1")

	if err := s.Run(); err == nil {
		t.Fatalf("expected listen error for an invalid port")
	}
	if logs.FilterMessage("server stopped").Len() != 1 {
		t.Fatalf("expected one error entry, got %v", logs.All())
	}
}

func TestInvalidBody(t *testing.T) {
	_, h := newTestServer(t)
	if rec := do(t, h, "POST", "/goals", "{"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
