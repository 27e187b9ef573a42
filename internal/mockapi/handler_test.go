// internal/mockapi/handler_test.go
package mockapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookhouse/internal/api"
	"bookhouse/internal/borrow"
	"bookhouse/internal/catalog"
	"bookhouse/internal/query"
)

type stack struct {
	cache   *query.Cache
	catalog catalog.Service
	borrows borrow.Service
}

func newStack(t *testing.T) *stack {
	t.Helper()
	srv := httptest.NewServer(NewHandler(NewStore()))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL + "/api")
	cache := query.NewCache(context.Background())
	return &stack{
		cache:   cache,
		catalog: catalog.NewService(client, cache),
		borrows: borrow.NewService(client, cache),
	}
}

func await(t *testing.T, sub *query.Subscription) query.Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := query.Await(ctx, sub)
	require.NoError(t, err)
	require.Equal(t, query.StatusSuccess, res.Status, "unexpected result: %v", res.Err)
	return res
}

func duneInput() catalog.CreateBookInput {
	return catalog.CreateBookInput{
		Title:  "Dune",
		Author: "Frank Herbert",
		Genre:  catalog.GenreFantasy,
		ISBN:   "9780441172719",
		Copies: 5,
		Image:  "https://covers.example.com/dune.jpg",
	}
}

func TestCreateThenListIncludesNewBook(t *testing.T) {
	s := newStack(t)

	sub := s.catalog.ListBooks(1, 9)
	defer sub.Close()
	page, _ := query.Value[*catalog.BookPage](await(t, sub))
	require.Empty(t, page.Books)

	created, err := s.catalog.CreateBook(context.Background(), duneInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// The live list subscription refetches via invalidation, without
	// a manual reload.
	require.Eventually(t, func() bool {
		p, ok := query.Value[*catalog.BookPage](sub.Current())
		return ok && len(p.Books) == 1 && p.Books[0].ID == created.ID
	}, 2*time.Second, 5*time.Millisecond)
}

func TestGetBookRoundTrip(t *testing.T) {
	s := newStack(t)
	created, err := s.catalog.CreateBook(context.Background(), duneInput())
	require.NoError(t, err)

	sub := s.catalog.GetBook(created.ID)
	defer sub.Close()
	book, _ := query.Value[*catalog.Book](await(t, sub))
	assert.Equal(t, "Dune", book.Title)
	assert.True(t, book.Available)

	missing := s.catalog.GetBook("nope")
	defer missing.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := query.Await(ctx, missing)
	require.NoError(t, err)
	require.Equal(t, query.StatusError, res.Status)
	assert.True(t, api.IsNotFound(res.Err))
}

func TestBorrowDecrementsCopiesAndAggregates(t *testing.T) {
	s := newStack(t)
	created, err := s.catalog.CreateBook(context.Background(), duneInput())
	require.NoError(t, err)

	due := time.Now().AddDate(0, 0, 14).UTC().Truncate(time.Second)
	_, err = s.borrows.CreateBorrow(context.Background(), borrow.Input{
		BookID: created.ID, Quantity: 2, DueDate: due,
	})
	require.NoError(t, err)
	_, err = s.borrows.CreateBorrow(context.Background(), borrow.Input{
		BookID: created.ID, Quantity: 3, DueDate: due,
	})
	require.NoError(t, err)

	detail := s.catalog.GetBook(created.ID)
	defer detail.Close()
	book, _ := query.Value[*catalog.Book](await(t, detail))
	assert.Equal(t, 0, book.Copies)
	assert.False(t, book.Available, "availability follows the copy count")

	list := s.borrows.ListBorrows()
	defer list.Close()
	records, _ := query.Value[*borrow.RecordList](await(t, list))
	require.Len(t, records.Data, 1, "borrows aggregate per book")
	assert.Equal(t, 5, records.Data[0].TotalQuantity)
	assert.Equal(t, "Dune", records.Data[0].Book.Title)
}

func TestBorrowBeyondStockRejected(t *testing.T) {
	s := newStack(t)
	created, err := s.catalog.CreateBook(context.Background(), duneInput())
	require.NoError(t, err)

	_, err = s.borrows.CreateBorrow(context.Background(), borrow.Input{
		BookID:   created.ID,
		Quantity: 6,
		DueDate:  time.Now().AddDate(0, 0, 7),
	})
	require.Error(t, err)
}

func TestDeleteRemovesBookFromListing(t *testing.T) {
	s := newStack(t)
	created, err := s.catalog.CreateBook(context.Background(), duneInput())
	require.NoError(t, err)

	sub := s.catalog.ListBooks(1, 9)
	defer sub.Close()
	page, _ := query.Value[*catalog.BookPage](await(t, sub))
	require.Len(t, page.Books, 1)

	require.NoError(t, s.catalog.DeleteBook(context.Background(), created.ID))

	require.Eventually(t, func() bool {
		p, ok := query.Value[*catalog.BookPage](sub.Current())
		return ok && len(p.Books) == 0
	}, 2*time.Second, 5*time.Millisecond)

	require.Error(t, s.catalog.DeleteBook(context.Background(), created.ID), "double delete is a 404")
}

func TestListBooksPaginates(t *testing.T) {
	s := newStack(t)
	for i := 0; i < 20; i++ {
		input := duneInput()
		input.Title = input.Title + "-" + string(rune('a'+i))
		_, err := s.catalog.CreateBook(context.Background(), input)
		require.NoError(t, err)
	}

	last := s.catalog.ListBooks(3, 9)
	defer last.Close()
	page, _ := query.Value[*catalog.BookPage](await(t, last))
	assert.Len(t, page.Books, 2, "20 books at limit 9 leave 2 on the last page")
	assert.Equal(t, 20, page.Meta.Total)

	pager := catalog.Pager{Total: page.Meta.Total, Limit: 9}
	assert.Equal(t, 3, pager.TotalPages())
}
