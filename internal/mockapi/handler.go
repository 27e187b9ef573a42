// internal/mockapi/handler.go
package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bookhouse/internal/borrow"
	"bookhouse/internal/catalog"
)

// Handler serves the stub of the remote library API.
type Handler struct {
	store *Store
}

// NewHandler builds the stub's router.
func NewHandler(store *Store) http.Handler {
	h := &Handler{store: store}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/books", h.listBooks)
		r.Post("/books", h.createBook)
		r.Get("/books/{id}", h.getBook)
		r.Put("/books/{id}", h.updateBook)
		r.Delete("/books/{id}", h.deleteBook)
		r.Get("/borrow", h.listBorrows)
		r.Post("/borrow", h.createBorrow)
	})
	return r
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	books, total := h.store.ListBooks(page, limit)
	writeJSON(w, http.StatusOK, catalog.BookPage{
		Books: books,
		Meta:  catalog.PageMeta{Total: total, Page: page, Limit: limit},
	})
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.store.GetBook(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var input catalog.CreateBookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !input.Genre.Valid() {
		http.Error(w, "unknown genre", http.StatusBadRequest)
		return
	}
	if input.Copies < 0 {
		http.Error(w, "copies must not be negative", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, h.store.CreateBook(input))
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	var input catalog.UpdateBookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	book, err := h.store.UpdateBook(chi.URLParam(r, "id"), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBook(chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "book deleted",
	})
}

func (h *Handler) listBorrows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, borrow.RecordList{Data: h.store.ListBorrows()})
}

func (h *Handler) createBorrow(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Book     string    `json:"book"`
		Quantity int       `json:"quantity"`
		DueDate  time.Time `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.store.Borrow(input.Book, input.Quantity, input.DueDate)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
