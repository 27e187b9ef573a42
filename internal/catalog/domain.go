// internal/catalog/domain.go
package catalog

// Genre is the fixed classification a book belongs to.
type Genre string

const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenreFantasy    Genre = "FANTASY"
)

// Genres lists every valid genre, in display order.
var Genres = []Genre{
	GenreFiction,
	GenreNonFiction,
	GenreScience,
	GenreHistory,
	GenreBiography,
	GenreFantasy,
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

// Book is a catalog item. The remote store is authoritative; values
// held here are disposable invalidate-and-refetch copies.
type Book struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       Genre  `json:"genre"`
	ISBN        string `json:"isbn"`
	Description string `json:"description,omitempty"`
	Copies      int    `json:"copies"`
	Available   bool   `json:"available"`
	Image       string `json:"image"`
}

// CreateBookInput is the validated form payload for a new book.
type CreateBookInput struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       Genre  `json:"genre" validate:"required,oneof=FICTION NON_FICTION SCIENCE HISTORY BIOGRAPHY FANTASY"`
	ISBN        string `json:"isbn" validate:"required"`
	Description string `json:"description,omitempty"`
	Copies      int    `json:"copies" validate:"gte=0"`
	Available   bool   `json:"available"`
	Image       string `json:"image" validate:"required,url"`
}

// UpdateBookInput carries the replacement field values for an edit.
type UpdateBookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       Genre  `json:"genre"`
	ISBN        string `json:"isbn"`
	Description string `json:"description,omitempty"`
	Copies      int    `json:"copies"`
	Available   bool   `json:"available"`
	Image       string `json:"image"`
}

// PageMeta is the paging envelope returned alongside a book listing.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// BookPage is one page of the catalog listing.
type BookPage struct {
	Books []Book   `json:"books"`
	Meta  PageMeta `json:"meta"`
}
