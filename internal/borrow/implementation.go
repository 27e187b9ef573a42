// internal/borrow/implementation.go
package borrow

import (
	"context"
	"fmt"
	"net/url"

	"bookhouse/internal/api"
	"bookhouse/internal/query"
)

// service implements the Service interface.
type service struct {
	client  *api.Client
	cache   *query.Cache
	listDef query.Definition
}

// NewService creates a new borrow client instance.
func NewService(client *api.Client, cache *query.Cache) Service {
	s := &service{
		client: client,
		cache:  cache,
	}
	s.listDef = query.Definition{
		Name:     "borrows/list",
		Provides: []query.Tag{query.TagBorrows},
		Fetch:    s.fetchList,
	}
	return s
}

func (s *service) ListBorrows() *query.Subscription {
	return s.cache.Subscribe(s.listDef, nil)
}

// CreateBorrow records a borrow transaction. Borrowing changes copy
// counts, so both the borrows and books tags are invalidated.
func (s *service) CreateBorrow(ctx context.Context, input Input) (*Record, error) {
	created := &Record{}
	if err := s.client.Post(ctx, "/borrow", input, created); err != nil {
		return nil, fmt.Errorf("create borrow: %w", err)
	}

	s.cache.Invalidate(query.TagBorrows, query.TagBooks)
	return created, nil
}

func (s *service) fetchList(ctx context.Context, _ url.Values) (any, error) {
	list := &RecordList{}
	if err := s.client.Get(ctx, "/borrow", nil, list); err != nil {
		return nil, err
	}
	return list, nil
}
