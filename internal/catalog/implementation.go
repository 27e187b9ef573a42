// internal/catalog/implementation.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"bookhouse/internal/api"
	"bookhouse/internal/query"
)

// service implements the Service interface over the remote API and the
// shared query cache.
type service struct {
	client   *api.Client
	cache    *query.Cache
	validate *validator.Validate

	listDef query.Definition
	getDef  query.Definition
}

// NewService creates a new catalog client instance.
func NewService(client *api.Client, cache *query.Cache) Service {
	s := &service{
		client:   client,
		cache:    cache,
		validate: validator.New(),
	}
	s.listDef = query.Definition{
		Name:     "books/list",
		Provides: []query.Tag{query.TagBooks},
		Fetch:    s.fetchPage,
	}
	s.getDef = query.Definition{
		Name:     "books/detail",
		Provides: []query.Tag{query.TagBooks},
		Fetch:    s.fetchBook,
	}
	return s
}

// ListBooks subscribes to one page of the catalog. Each (page, limit)
// pair is its own cache key, so returning to a previously viewed page
// costs no network unless it was invalidated in the meantime.
func (s *service) ListBooks(page, limit int) *query.Subscription {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	return s.cache.Subscribe(s.listDef, params)
}

// GetBook subscribes to a single book by ID.
func (s *service) GetBook(id string) *query.Subscription {
	params := url.Values{}
	params.Set("id", id)
	return s.cache.Subscribe(s.getDef, params)
}

// CreateBook validates the input locally, then creates the book and
// invalidates the books and borrows tags.
func (s *service) CreateBook(ctx context.Context, input CreateBookInput) (*Book, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid book: %w", err)
	}

	created := &Book{}
	if err := s.client.Post(ctx, "/books", input, created); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.cache.Invalidate(query.TagBooks, query.TagBorrows)
	return created, nil
}

// UpdateBook replaces the book's editable fields.
func (s *service) UpdateBook(ctx context.Context, id string, input UpdateBookInput) (*Book, error) {
	updated := &Book{}
	if err := s.client.Put(ctx, "/books/"+id, input, updated); err != nil {
		return nil, fmt.Errorf("update book %s: %w", id, err)
	}

	s.cache.Invalidate(query.TagBooks, query.TagBorrows)
	return updated, nil
}

// DeleteBook removes the book from the catalog.
func (s *service) DeleteBook(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/books/"+id); err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}

	s.cache.Invalidate(query.TagBooks, query.TagBorrows)
	return nil
}

func (s *service) fetchPage(ctx context.Context, params url.Values) (any, error) {
	page := &BookPage{}
	if err := s.client.Get(ctx, "/books", params, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *service) fetchBook(ctx context.Context, params url.Values) (any, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, "/books/"+params.Get("id"), nil, &raw); err != nil {
		return nil, err
	}
	return decodeBook(raw)
}

// decodeBook tolerates both observed detail-response shapes: the book
// directly, or wrapped in a {"books": ...} envelope.
func decodeBook(raw json.RawMessage) (*Book, error) {
	var envelope struct {
		Books json.RawMessage `json:"books"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Books) > 0 && envelope.Books[0] == '{' {
		raw = envelope.Books
	}

	book := &Book{}
	if err := json.Unmarshal(raw, book); err != nil {
		return nil, fmt.Errorf("decode book: %w", err)
	}
	return book, nil
}
