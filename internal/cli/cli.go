// internal/cli/cli.go
package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"bookhouse/internal/api"
	"bookhouse/internal/borrow"
	"bookhouse/internal/catalog"
	"bookhouse/internal/config"
	"bookhouse/internal/query"
	"bookhouse/internal/tracing"
)

// App wires the client stack together for the command tree: one shared
// cache, one API client, the domain services on top.
type App struct {
	cfg     *config.Config
	cache   *query.Cache
	catalog catalog.Service
	borrows borrow.Service

	shutdownTracing func(context.Context) error
}

func (a *App) init(configPath, baseURL string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	a.cfg = cfg

	a.shutdownTracing, err = tracing.Setup(context.Background(), cfg.Tracing.Endpoint)
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
	)
	a.cache = query.NewCache(context.Background())
	a.catalog = catalog.NewService(client, a.cache)
	a.borrows = borrow.NewService(client, a.cache)
	return nil
}

func (a *App) close() {
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}
}

// toastNotifier renders workflow notifications on the terminal.
type toastNotifier struct{}

func (toastNotifier) Success(msg string) { fmt.Fprintln(os.Stderr, "✔", msg) }
func (toastNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "✘", msg) }

// printNavigator reports where the UI would go next.
type printNavigator struct{}

func (printNavigator) Navigate(path string) { fmt.Fprintln(os.Stderr, "→", path) }

// NewRootCmd builds the bookhouse command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}
	var configPath, baseURL string

	root := &cobra.Command{
		Use:           "bookhouse",
		Short:         "Catalog-management client for the BookHouse library API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(configPath, baseURL)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL override")

	root.AddCommand(newBooksCmd(app))
	root.AddCommand(newBorrowCmd(app))
	root.AddCommand(newBorrowsCmd(app))
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
