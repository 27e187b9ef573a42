// internal/query/query.go
package query

import (
	"context"
	"net/url"
)

// Tag identifies a group of cached resources that invalidate together.
type Tag string

const (
	TagBooks   Tag = "books"
	TagBorrows Tag = "borrows"
)

// Status is the lifecycle state of a cache entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is a snapshot of a cache entry as seen by a subscriber.
// Data carries the last successfully fetched payload and is kept
// visible while a refetch is in flight; it is withheld on error.
type Result struct {
	Status Status
	Data   any
	Err    error
}

// FetchFunc loads a resource from the remote API.
type FetchFunc func(ctx context.Context, params url.Values) (any, error)

// Definition declares a query: its cache-key name, the tags it
// provides, and how to fetch it. The tag set is fixed at definition
// time, never derived from a response payload.
type Definition struct {
	Name     string
	Provides []Tag
	Fetch    FetchFunc
}

func (d Definition) provides(tags []Tag) bool {
	for _, p := range d.Provides {
		for _, t := range tags {
			if p == t {
				return true
			}
		}
	}
	return false
}
