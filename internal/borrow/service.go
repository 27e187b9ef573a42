// internal/borrow/service.go
package borrow

import (
	"context"

	"bookhouse/internal/query"
)

// Service defines the interface for the borrow client.
type Service interface {
	// ListBorrows subscribes to the aggregated borrow summary. The
	// result payload is a *RecordList.
	ListBorrows() *query.Subscription
	CreateBorrow(ctx context.Context, input Input) (*Record, error)
}
