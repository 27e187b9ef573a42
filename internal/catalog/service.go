// internal/catalog/service.go
package catalog

import (
	"context"

	"bookhouse/internal/query"
)

// Service defines the interface for the catalog client.
type Service interface {
	// ListBooks subscribes to one page of the catalog. The result
	// payload is a *BookPage.
	ListBooks(page, limit int) *query.Subscription
	// GetBook subscribes to a single book by ID. The result payload
	// is a *Book.
	GetBook(id string) *query.Subscription
	CreateBook(ctx context.Context, input CreateBookInput) (*Book, error)
	UpdateBook(ctx context.Context, id string, input UpdateBookInput) (*Book, error)
	DeleteBook(ctx context.Context, id string) error
}
