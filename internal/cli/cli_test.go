// internal/cli/cli_test.go
package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookhouse/internal/query"
)

func TestInitAppliesConfiguredTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "bookhouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: 25ms\n"), 0o644))

	app := &App{}
	require.NoError(t, app.init(path, srv.URL))

	sub := app.catalog.GetBook("b1")
	defer sub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := query.Await(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, query.StatusError, res.Status, "a request slower than api.timeout must fail")
}

func TestInitBaseURLFlagOverridesConfig(t *testing.T) {
	app := &App{}
	require.NoError(t, app.init("", "http://flag.example.com/api"))
	assert.Equal(t, "http://flag.example.com/api", app.cfg.API.BaseURL)
}
