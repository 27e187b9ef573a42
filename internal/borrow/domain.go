// internal/borrow/domain.go
package borrow

import "time"

// BookSummary is the embedded view of a borrowed book.
type BookSummary struct {
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// Record is an aggregated borrowing transaction for one book. The API
// returns these pre-aggregated; the client never updates or deletes
// them directly.
type Record struct {
	ID            string      `json:"_id"`
	Book          BookSummary `json:"book"`
	TotalQuantity int         `json:"totalQuantity"`
	DueDate       time.Time   `json:"dueDate"`
}

// Input is the payload for a new borrow transaction.
type Input struct {
	BookID   string    `json:"book"`
	Quantity int       `json:"quantity"`
	DueDate  time.Time `json:"dueDate"`
}

// RecordList is the wire envelope for the borrow summary.
type RecordList struct {
	Data []Record `json:"data"`
}
