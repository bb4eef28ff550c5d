package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/logger"
	"github.com/pbaille/planner/internal/planner"
	"github.com/pbaille/planner/internal/store"
)

// maxImport caps the size of an imported document
const maxImport = 10 * 1024 * 1024

// Server handles HTTP requests for the planner API
type Server struct {
	state   *planner.Container
	planner *planner.Planner
	log     *logger.Logger
	addr    string
}

// New creates a new API server over the container
func New(state *planner.Container, p *planner.Planner, log *logger.Logger, addr string) *Server {
	return &Server{state: state, planner: p, log: log, addr: addr}
}

// Handler returns the routed handler with CORS applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Document and views
	mux.HandleFunc("GET /document", s.getDocument)
	mux.HandleFunc("GET /today", s.today)
	mux.HandleFunc("GET /upcoming", s.upcoming)
	mux.HandleFunc("GET /schedule", s.schedule)
	mux.HandleFunc("GET /summary", s.summary)
	mux.HandleFunc("GET /search", s.search)

	// Collections
	mux.HandleFunc("POST /goals", s.addGoal)
	mux.HandleFunc("POST /goals/{id}/toggle", s.byID(planner.CollectionGoals, planner.ToggleGoal))
	mux.HandleFunc("DELETE /goals/{id}", s.byID(planner.CollectionGoals, planner.RemoveGoal))

	mux.HandleFunc("POST /schedule", s.addClass)
	mux.HandleFunc("DELETE /schedule/{id}", s.byID(planner.CollectionSchedule, planner.RemoveClass))

	mux.HandleFunc("POST /homework", s.addHomework)
	mux.HandleFunc("POST /homework/{id}/toggle", s.byID(planner.CollectionHomework, planner.ToggleHomework))
	mux.HandleFunc("DELETE /homework/{id}", s.byID(planner.CollectionHomework, planner.RemoveHomework))

	mux.HandleFunc("POST /todos", s.addTodo)
	mux.HandleFunc("POST /todos/{id}/toggle", s.byID(planner.CollectionTodos, planner.ToggleTodo))
	mux.HandleFunc("DELETE /todos/{id}", s.byID(planner.CollectionTodos, planner.RemoveTodo))

	mux.HandleFunc("POST /books", s.addBook)
	mux.HandleFunc("PATCH /books/{id}", s.updateBook)
	mux.HandleFunc("DELETE /books/{id}", s.byID(planner.CollectionBooks, planner.RemoveBook))

	// Profile and theme
	mux.HandleFunc("PUT /profile", s.setProfile)
	mux.HandleFunc("PUT /theme", s.setTheme)

	// Backup
	mux.HandleFunc("GET /export", s.export)
	mux.HandleFunc("POST /import", s.importDocument)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// Run starts the HTTP server
func (s *Server) Run() error {
	s.log.Info("starting server", "addr", s.addr)
	fmt.Printf("Starting server on %s\n", s.addr)
	if err := http.ListenAndServe(s.addr, s.Handler()); err != nil {
		s.log.Error("server stopped", "addr", s.addr, "error", err)
		return err
	}
	return nil
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Planner-Persist-Error")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Document())
}

func (s *Server) today(w http.ResponseWriter, r *http.Request) {
	today := s.dateParam(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":  today,
		"todos": planner.TodayAgenda(s.state.Document(), today),
	})
}

func (s *Server) upcoming(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"homework": planner.UpcomingHomework(s.state.Document()),
	})
}

func (s *Server) schedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days": planner.ScheduleByDay(s.state.Document()),
	})
}

// BookView is a book with its rendered progress
type BookView struct {
	domain.Book
	Progress int `json:"progress"`
}

// SummaryResponse is the dashboard payload
type SummaryResponse struct {
	Date    string          `json:"date"`
	Profile domain.Profile  `json:"profile"`
	Theme   domain.Theme    `json:"theme"`
	Counts  planner.Summary `json:"counts"`
	Books   []BookView      `json:"books"`
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	doc := s.state.Document()
	today := s.dateParam(r)

	books := make([]BookView, 0, len(doc.Books))
	for _, b := range doc.Books {
		books = append(books, BookView{Book: b, Progress: planner.DisplayProgress(b)})
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		Date:    today,
		Profile: doc.Profile,
		Theme:   doc.Theme,
		Counts:  planner.Summarize(doc, today),
		Books:   books,
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"matches": planner.Search(s.state.Document(), query),
		"query":   query,
	})
}

// dateParam returns ?date= or the planner's today
func (s *Server) dateParam(r *http.Request) string {
	if d := strings.TrimSpace(r.URL.Query().Get("date")); d != "" {
		return d
	}
	return s.planner.Today()
}

// created applies an add transition and answers 201 with the new id,
// or 400 when the required field was blank and nothing was added
func (s *Server) created(w http.ResponseWriter, field string, add func(domain.Document) (domain.Document, string)) {
	var id string
	doc, err := s.state.Apply(func(d domain.Document) domain.Document {
		next, newID := add(d)
		id = newID
		return next
	})

	if id == "" {
		writeError(w, http.StatusBadRequest, field+" is required")
		return
	}
	persistHeader(w, err)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       id,
		"document": doc,
	})
}

// AddGoalRequest is the request body for adding a goal
type AddGoalRequest struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

func (s *Server) addGoal(w http.ResponseWriter, r *http.Request) {
	var req AddGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	s.created(w, "text", func(d domain.Document) (domain.Document, string) {
		return s.planner.AddGoal(d, planner.GoalDraft(req))
	})
}

// AddClassRequest is the request body for adding a timetable slot
type AddClassRequest struct {
	Subject  string `json:"subject"`
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

func (s *Server) addClass(w http.ResponseWriter, r *http.Request) {
	var req AddClassRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		writeError(w, http.StatusBadRequest, "subject is required")
		return
	}
	s.created(w, "subject", func(d domain.Document) (domain.Document, string) {
		return s.planner.AddClass(d, planner.ClassDraft(req))
	})
}

// AddHomeworkRequest is the request body for adding an assignment
type AddHomeworkRequest struct {
	Title   string `json:"title"`
	Subject string `json:"subject,omitempty"`
	Due     string `json:"due,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (s *Server) addHomework(w http.ResponseWriter, r *http.Request) {
	var req AddHomeworkRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	s.created(w, "title", func(d domain.Document) (domain.Document, string) {
		return s.planner.AddHomework(d, planner.HomeworkDraft(req))
	})
}

// AddTodoRequest is the request body for adding a to-do
type AddTodoRequest struct {
	Date     string `json:"date,omitempty"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

func (s *Server) addTodo(w http.ResponseWriter, r *http.Request) {
	var req AddTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	s.created(w, "text", func(d domain.Document) (domain.Document, string) {
		return s.planner.AddTodo(d, planner.TodoDraft(req))
	})
}

// BookRequest is the body for adding a book and, with absent fields kept, for patching one
type BookRequest struct {
	Title      *string       `json:"title"`
	Author     *string       `json:"author"`
	Cover      *string       `json:"cover"`
	Status     *string       `json:"status"`
	PagesRead  *domain.Count `json:"pagesRead"`
	TotalPages *domain.Count `json:"totalPages"`
	Genre      *string       `json:"genre"`
	Comment    *string       `json:"comment"`
	Rating     *domain.Count `json:"rating"`
	StartDate  *string       `json:"startDate"`
	EndDate    *string       `json:"endDate"`
}

func (b BookRequest) draft() planner.BookDraft {
	return planner.BookDraft{
		Title:      str(b.Title),
		Author:     str(b.Author),
		Cover:      str(b.Cover),
		Status:     str(b.Status),
		PagesRead:  num(b.PagesRead),
		TotalPages: num(b.TotalPages),
		Genre:      str(b.Genre),
		Comment:    str(b.Comment),
		Rating:     num(b.Rating),
		StartDate:  str(b.StartDate),
		EndDate:    str(b.EndDate),
	}
}

func (b BookRequest) patch() planner.BookPatch {
	return planner.BookPatch{
		Title:      b.Title,
		Author:     b.Author,
		Cover:      b.Cover,
		Status:     b.Status,
		PagesRead:  numPtr(b.PagesRead),
		TotalPages: numPtr(b.TotalPages),
		Genre:      b.Genre,
		Comment:    b.Comment,
		Rating:     numPtr(b.Rating),
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
	}
}

func (s *Server) addBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(str(req.Title)) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	s.created(w, "title", func(d domain.Document) (domain.Document, string) {
		return s.planner.AddBook(d, req.draft())
	})
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mutate(w, r, planner.CollectionBooks, func(d domain.Document, id string) domain.Document {
		return planner.UpdateBook(d, id, req.patch())
	})
}

// byID adapts a toggle or remove transition to a {id} route
func (s *Server) byID(c planner.Collection, fn func(domain.Document, string) domain.Document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mutate(w, r, c, fn)
	}
}

// mutate resolves {id} (full or prefix) in collection c and applies fn to it
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, c planner.Collection, fn func(domain.Document, string) domain.Document) {
	id, err := planner.Resolve(s.state.Document(), c, r.PathValue("id"))
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, planner.ErrAmbiguous) {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}

	doc, err := s.state.Apply(func(d domain.Document) domain.Document { return fn(d, id) })
	persistHeader(w, err)
	writeJSON(w, http.StatusOK, doc)
}

// ProfileRequest is the request body for updating the profile
type ProfileRequest struct {
	Name   *string       `json:"name"`
	School *string       `json:"school"`
	Year   *domain.Count `json:"year"`
}

func (s *Server) setProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pp := planner.ProfilePatch{Name: req.Name, School: req.School, Year: numPtr(req.Year)}
	doc, err := s.state.Apply(func(d domain.Document) domain.Document { return planner.SetProfile(d, pp) })
	persistHeader(w, err)
	writeJSON(w, http.StatusOK, doc.Profile)
}

// ThemeRequest is the request body for setting the theme; "toggle" flips it
type ThemeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var t planner.Transition
	if strings.EqualFold(strings.TrimSpace(req.Theme), "toggle") {
		t = planner.ToggleTheme
	} else {
		theme, err := planner.ParseTheme(req.Theme)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		t = func(d domain.Document) domain.Document { return planner.SetTheme(d, theme) }
	}

	doc, err := s.state.Apply(t)
	persistHeader(w, err)
	writeJSON(w, http.StatusOK, map[string]domain.Theme{"theme": doc.Theme})
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	data, err := store.Encode(s.state.Document())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := store.ExportFileName(s.planner.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) importDocument(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImport))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	doc, err := store.Decode(data)
	if err != nil {
		s.log.Info("import rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err = s.state.Replace(doc)
	persistHeader(w, err)
	writeJSON(w, http.StatusOK, doc)
}

// persistHeader reports a failed save of the request's transition without failing the request
func persistHeader(w http.ResponseWriter, err error) {
	if err != nil {
		w.Header().Set("X-Planner-Persist-Error", err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *domain.Count) int {
	if p == nil {
		return 0
	}
	return int(*p)
}

func numPtr(p *domain.Count) *int {
	if p == nil {
		return nil
	}
	n := int(*p)
	return &n
}
