// internal/catalog/implementation_test.go
package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookhouse/internal/api"
	"bookhouse/internal/query"
)

func awaitResult(t *testing.T, sub *query.Subscription) query.Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := query.Await(ctx, sub)
	require.NoError(t, err)
	return res
}

func TestGetBookDecodesBareResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Book{ID: "b1", Title: "Dune", Copies: 3})
	}))
	defer srv.Close()

	svc := NewService(api.NewClient(srv.URL), query.NewCache(context.Background()))
	sub := svc.GetBook("b1")
	defer sub.Close()

	res := awaitResult(t, sub)
	require.Equal(t, query.StatusSuccess, res.Status)
	book, ok := query.Value[*Book](res)
	require.True(t, ok)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 3, book.Copies)
}

func TestGetBookDecodesEnvelopeResponse(t *testing.T) {
	// Some observed API versions wrap the entity in a books field.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"books": Book{ID: "b1", Title: "Dune", Copies: 3},
		})
	}))
	defer srv.Close()

	svc := NewService(api.NewClient(srv.URL), query.NewCache(context.Background()))
	sub := svc.GetBook("b1")
	defer sub.Close()

	res := awaitResult(t, sub)
	require.Equal(t, query.StatusSuccess, res.Status)
	book, ok := query.Value[*Book](res)
	require.True(t, ok)
	assert.Equal(t, "Dune", book.Title)
}

func TestGetBookMissingSurfacesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "book not found", http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewService(api.NewClient(srv.URL), query.NewCache(context.Background()))
	sub := svc.GetBook("missing")
	defer sub.Close()

	res := awaitResult(t, sub)
	require.Equal(t, query.StatusError, res.Status)
	assert.True(t, api.IsNotFound(res.Err), "missing entities surface distinctly")
}

func TestCreateBookValidatesBeforeNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	svc := NewService(api.NewClient(srv.URL), query.NewCache(context.Background()))

	tests := []struct {
		name  string
		input CreateBookInput
	}{
		{"missing title", CreateBookInput{Author: "A", Genre: GenreFiction, ISBN: "1", Copies: 1, Image: "https://x.test/c.jpg"}},
		{"bad genre", CreateBookInput{Title: "T", Author: "A", Genre: "WESTERN", ISBN: "1", Copies: 1, Image: "https://x.test/c.jpg"}},
		{"negative copies", CreateBookInput{Title: "T", Author: "A", Genre: GenreFiction, ISBN: "1", Copies: -1, Image: "https://x.test/c.jpg"}},
		{"bad image url", CreateBookInput{Title: "T", Author: "A", Genre: GenreFiction, ISBN: "1", Copies: 1, Image: "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBook(context.Background(), tt.input)
			require.Error(t, err)
		})
	}
	assert.Equal(t, int64(0), hits.Load(), "validation failures are resolved locally")
}

func TestMutationsInvalidateBooksAndBorrows(t *testing.T) {
	var listHits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/books":
			listHits.Add(1)
			json.NewEncoder(w).Encode(BookPage{Meta: PageMeta{Total: 0, Page: 1, Limit: 9}})
		case r.Method == http.MethodPost && r.URL.Path == "/books":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Book{ID: "new"})
		case r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]bool{"success": true})
		}
	}))
	defer srv.Close()

	cache := query.NewCache(context.Background())
	svc := NewService(api.NewClient(srv.URL), cache)

	sub := svc.ListBooks(1, 9)
	defer sub.Close()
	awaitResult(t, sub)
	require.Equal(t, int64(1), listHits.Load())

	_, err := svc.CreateBook(context.Background(), CreateBookInput{
		Title: "T", Author: "A", Genre: GenreFiction, ISBN: "1", Copies: 1,
		Image: "https://x.test/c.jpg",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return listHits.Load() == 2 }, 2*time.Second, 5*time.Millisecond,
		"creating a book must refetch the subscribed list")
}
