package planner

import (
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

// MaxRating is the top of the 0..5 rating scale
const MaxRating domain.Count = 5

// BookDraft is the user input for a reading log entry
type BookDraft struct {
	Title      string
	Author     string
	Cover      string
	Status     string
	PagesRead  int
	TotalPages int
	Genre      string
	Comment    string
	Rating     int
	StartDate  string
	EndDate    string
}

// BookPatch carries the fields to overwrite on a book; nil fields are kept
type BookPatch struct {
	Title      *string
	Author     *string
	Cover      *string
	Status     *string
	PagesRead  *int
	TotalPages *int
	Genre      *string
	Comment    *string
	Rating     *int
	StartDate  *string
	EndDate    *string
}

func bookID(b domain.Book) string { return b.ID }

// AddBook prepends a book. Page counts are clamped to zero independently;
// pagesRead may exceed totalPages.
func (p *Planner) AddBook(doc domain.Document, d BookDraft) (domain.Document, string) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return doc, ""
	}

	b := domain.Book{
		ID:         p.newID(),
		Title:      title,
		Author:     strings.TrimSpace(d.Author),
		Cover:      strings.TrimSpace(d.Cover),
		Status:     domain.ParseBookStatus(d.Status),
		PagesRead:  domain.Count(d.PagesRead).NonNegative(),
		TotalPages: domain.Count(d.TotalPages).NonNegative(),
		Genre:      strings.TrimSpace(d.Genre),
		Comment:    d.Comment,
		Rating:     domain.Count(d.Rating).Clamp(0, MaxRating),
		StartDate:  strings.TrimSpace(d.StartDate),
		EndDate:    strings.TrimSpace(d.EndDate),
	}
	doc.Books = prepend(doc.Books, b)
	return doc, b.ID
}

// UpdateBook shallow-merges the set fields of bp into the book with id
func UpdateBook(doc domain.Document, id string, bp BookPatch) domain.Document {
	doc.Books = patch(doc.Books, bookID, id, func(b *domain.Book) { bp.apply(b) })
	return doc
}

func (bp BookPatch) apply(b *domain.Book) {
	if bp.Title != nil {
		// a blank title keeps the old one, a book always has a title
		if t := strings.TrimSpace(*bp.Title); t != "" {
			b.Title = t
		}
	}
	if bp.Author != nil {
		b.Author = strings.TrimSpace(*bp.Author)
	}
	if bp.Cover != nil {
		b.Cover = strings.TrimSpace(*bp.Cover)
	}
	if bp.Status != nil {
		b.Status = domain.ParseBookStatus(*bp.Status)
	}
	if bp.PagesRead != nil {
		b.PagesRead = domain.Count(*bp.PagesRead).NonNegative()
	}
	if bp.TotalPages != nil {
		b.TotalPages = domain.Count(*bp.TotalPages).NonNegative()
	}
	if bp.Genre != nil {
		b.Genre = strings.TrimSpace(*bp.Genre)
	}
	if bp.Comment != nil {
		b.Comment = *bp.Comment
	}
	if bp.Rating != nil {
		b.Rating = domain.Count(*bp.Rating).Clamp(0, MaxRating)
	}
	if bp.StartDate != nil {
		b.StartDate = strings.TrimSpace(*bp.StartDate)
	}
	if bp.EndDate != nil {
		b.EndDate = strings.TrimSpace(*bp.EndDate)
	}
}

// Empty reports whether the patch changes nothing
func (bp BookPatch) Empty() bool {
	return bp == BookPatch{}
}

func RemoveBook(doc domain.Document, id string) domain.Document {
	doc.Books = without(doc.Books, bookID, id)
	return doc
}
