package domain

// Theme is the UI color scheme stored with the document
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Profile describes the planner's owner
type Profile struct {
	Name   string `json:"name"`
	School string `json:"school"`
	Year   Count  `json:"year"`
}

// Document is the single persisted aggregate holding all planner state
type Document struct {
	Theme    Theme           `json:"theme"`
	Profile  Profile         `json:"profile"`
	Goals    []Goal          `json:"goals"`
	Schedule []ScheduleEntry `json:"schedule"`
	Homework []HomeworkItem  `json:"homework"`
	Todos    []TodoItem      `json:"todos"`
	Books    []Book          `json:"books"`
}

// Goal is a school-year goal
type Goal struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Category  GoalCategory `json:"category"`
	Deadline  string       `json:"deadline,omitempty"`
	Done      bool         `json:"done"`
	CreatedAt string       `json:"createdAt"`
}

// ScheduleEntry is one class slot in the weekly timetable
type ScheduleEntry struct {
	ID       string  `json:"id"`
	Subject  string  `json:"subject"`
	Day      Weekday `json:"day"`
	Start    string  `json:"start"` // HH:MM
	End      string  `json:"end"`   // HH:MM
	Location string  `json:"location"`
}

// HomeworkItem is an assignment with an optional due date
type HomeworkItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Due       string `json:"due,omitempty"`
	Notes     string `json:"notes"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"createdAt"`
}

// TodoItem is a dated extracurricular to-do
type TodoItem struct {
	ID       string       `json:"id"`
	Date     string       `json:"date"`
	Text     string       `json:"text"`
	Category TodoCategory `json:"category"`
	Done     bool         `json:"done"`
}

// Book is a reading log entry
type Book struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	Cover      string     `json:"cover"`
	Status     BookStatus `json:"status"`
	PagesRead  Count      `json:"pagesRead"`
	TotalPages Count      `json:"totalPages"`
	Genre      string     `json:"genre"`
	Comment    string     `json:"comment"`
	Rating     Count      `json:"rating"`
	StartDate  string     `json:"startDate,omitempty"`
	EndDate    string     `json:"endDate,omitempty"`
}

// Default returns the document used when nothing has been persisted yet
func Default() Document {
	return Document{
		Theme:    ThemeLight,
		Profile:  Profile{Year: 1},
		Goals:    []Goal{},
		Schedule: []ScheduleEntry{},
		Homework: []HomeworkItem{},
		Todos:    []TodoItem{},
		Books:    []Book{},
	}
}

// Normalize fills absent collections and the theme so callers never see nil slices.
// It does not validate records.
func Normalize(doc Document) Document {
	if doc.Theme == "" {
		doc.Theme = ThemeLight
	}
	if doc.Goals == nil {
		doc.Goals = []Goal{}
	}
	if doc.Schedule == nil {
		doc.Schedule = []ScheduleEntry{}
	}
	if doc.Homework == nil {
		doc.Homework = []HomeworkItem{}
	}
	if doc.Todos == nil {
		doc.Todos = []TodoItem{}
	}
	if doc.Books == nil {
		doc.Books = []Book{}
	}
	return doc
}
