// internal/mockapi/store.go
package mockapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookhouse/internal/borrow"
	"bookhouse/internal/catalog"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrInsufficientStock = errors.New("not enough copies available")
)

// Store holds the stub server's state in memory. Borrow records are
// aggregated per book, the way the real API reports them.
type Store struct {
	mu      sync.Mutex
	books   map[string]catalog.Book
	order   []string
	borrows map[string]borrow.Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		books:   make(map[string]catalog.Book),
		borrows: make(map[string]borrow.Record),
	}
}

// ListBooks returns one page of books in insertion order plus the
// total count.
func (s *Store) ListBooks(page, limit int) ([]catalog.Book, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.order)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= total {
		return []catalog.Book{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]catalog.Book, 0, end-start)
	for _, id := range s.order[start:end] {
		out = append(out, s.books[id])
	}
	return out, total
}

// GetBook looks up a book by ID.
func (s *Store) GetBook(id string) (catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return catalog.Book{}, ErrBookNotFound
	}
	return b, nil
}

// CreateBook stores a new book under a server-assigned ID.
func (s *Store) CreateBook(input catalog.CreateBookInput) catalog.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := catalog.Book{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Author:      input.Author,
		Genre:       input.Genre,
		ISBN:        input.ISBN,
		Description: input.Description,
		Copies:      input.Copies,
		Available:   input.Copies > 0,
		Image:       input.Image,
	}
	s.books[b.ID] = b
	s.order = append(s.order, b.ID)
	return b
}

// UpdateBook replaces a book's editable fields.
func (s *Store) UpdateBook(id string, input catalog.UpdateBookInput) (catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return catalog.Book{}, ErrBookNotFound
	}
	b.Title = input.Title
	b.Author = input.Author
	b.Genre = input.Genre
	b.ISBN = input.ISBN
	b.Description = input.Description
	b.Copies = input.Copies
	b.Available = input.Copies > 0
	b.Image = input.Image
	s.books[id] = b
	return b, nil
}

// DeleteBook removes a book.
func (s *Store) DeleteBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(s.books, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Borrow records a transaction: stock is decremented, availability
// recomputed, and the per-book aggregate updated.
func (s *Store) Borrow(bookID string, quantity int, dueDate time.Time) (borrow.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[bookID]
	if !ok {
		return borrow.Record{}, ErrBookNotFound
	}
	if quantity < 1 || quantity > b.Copies {
		return borrow.Record{}, ErrInsufficientStock
	}

	b.Copies -= quantity
	b.Available = b.Copies > 0
	s.books[bookID] = b

	rec, ok := s.borrows[bookID]
	if !ok {
		rec = borrow.Record{
			ID:   uuid.NewString(),
			Book: borrow.BookSummary{Title: b.Title, ISBN: b.ISBN},
		}
	}
	rec.TotalQuantity += quantity
	rec.DueDate = dueDate
	s.borrows[bookID] = rec
	return rec, nil
}

// ListBorrows returns every aggregate record.
func (s *Store) ListBorrows() []borrow.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]borrow.Record, 0, len(s.borrows))
	for _, id := range s.order {
		if rec, ok := s.borrows[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}
