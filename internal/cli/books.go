// internal/cli/books.go
package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bookhouse/internal/api"
	"bookhouse/internal/catalog"
	"bookhouse/internal/query"
	"bookhouse/internal/workflow"
)

// featuredCount is how many books the home view shows from page one.
const featuredCount = 6

func newBooksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage the catalog",
	}
	cmd.AddCommand(
		newBooksListCmd(app),
		newBooksShowCmd(app),
		newBooksAddCmd(app),
		newBooksEditCmd(app),
		newBooksDeleteCmd(app),
	)
	return cmd
}

func newBooksListCmd(app *App) *cobra.Command {
	var page int
	var featured bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := app.cfg.List.Limit
			if featured {
				page = 1
			}

			sub := app.catalog.ListBooks(page, limit)
			defer sub.Close()
			res, err := query.Await(cmd.Context(), sub)
			if err != nil {
				return err
			}
			if res.Status == query.StatusError {
				return fmt.Errorf("failed to load books: %w", res.Err)
			}

			bp, _ := query.Value[*catalog.BookPage](res)
			books := bp.Books
			if featured && len(books) > featuredCount {
				books = books[:featuredCount]
			}
			for _, b := range books {
				printBookRow(cmd, b)
			}

			pager := catalog.Pager{Total: bp.Meta.Total, Limit: limit}
			cmd.Printf("page %d of %d (%d books)\n", pager.Clamp(page), pager.TotalPages(), bp.Meta.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().BoolVar(&featured, "featured", false, "show only the featured subset of page one")
	return cmd
}

func newBooksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub := app.catalog.GetBook(args[0])
			defer sub.Close()
			res, err := query.Await(cmd.Context(), sub)
			if err != nil {
				return err
			}
			if res.Status == query.StatusError {
				if api.IsNotFound(res.Err) {
					cmd.Println("The book is not found")
					return nil
				}
				return fmt.Errorf("failed to load book: %w", res.Err)
			}

			b, _ := query.Value[*catalog.Book](res)
			printBookDetail(cmd, *b)
			return nil
		},
	}
}

func newBooksAddCmd(app *App) *cobra.Command {
	var input catalog.CreateBookInput
	var genre string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new book to the catalog",
		Long:  "Add a new book. Genre must be one of: " + genreList(),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Genre = catalog.Genre(genre)
			input.Available = input.Copies > 0

			created, err := app.catalog.CreateBook(cmd.Context(), input)
			if err != nil {
				toastNotifier{}.Error("Failed to create book")
				return err
			}
			toastNotifier{}.Success("Book created successfully!")
			printNavigator{}.Navigate("/books")
			cmd.Println(created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Title, "title", "", "book title")
	cmd.Flags().StringVar(&input.Author, "author", "", "author name")
	cmd.Flags().StringVar(&genre, "genre", "", "genre ("+genreList()+")")
	cmd.Flags().StringVar(&input.ISBN, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&input.Image, "image", "", "cover image URL")
	cmd.Flags().IntVar(&input.Copies, "copies", 1, "number of copies")
	cmd.Flags().StringVar(&input.Description, "description", "", "free-text description")
	return cmd
}

func newBooksEditCmd(app *App) *cobra.Command {
	var title, author, genre, isbn, image, description string
	var copies int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := loadBook(cmd, app, args[0])
			if err != nil {
				return err
			}

			wf := workflow.NewEdit(*book, app.catalog, workflow.Options{
				Notifier: toastNotifier{},
			})
			if cmd.Flags().Changed("title") {
				wf.Draft.Title = title
			}
			if cmd.Flags().Changed("author") {
				wf.Draft.Author = author
			}
			if cmd.Flags().Changed("genre") {
				wf.Draft.Genre = catalog.Genre(genre)
			}
			if cmd.Flags().Changed("isbn") {
				wf.Draft.ISBN = isbn
			}
			if cmd.Flags().Changed("image") {
				wf.Draft.Image = image
			}
			if cmd.Flags().Changed("copies") {
				wf.Draft.Copies = copies
			}
			if cmd.Flags().Changed("description") {
				wf.Draft.Description = description
			}

			return wf.Submit(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "author name")
	cmd.Flags().StringVar(&genre, "genre", "", "genre ("+genreList()+")")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&image, "image", "", "cover image URL")
	cmd.Flags().IntVar(&copies, "copies", 0, "number of copies")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	return cmd
}

func newBooksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := loadBook(cmd, app, args[0])
			if err != nil {
				return err
			}

			done := make(chan struct{})
			wf := workflow.NewDelete(*book, app.catalog, workflow.Options{
				Notifier:     toastNotifier{},
				SuccessDelay: app.cfg.Workflow.SuccessDelay,
				OnClosed:     func() { close(done) },
			})

			if !yes {
				cmd.Printf("Delete %q by %s? [y/N]: ", book.Title, book.Author)
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					cmd.Println("Cancelled.")
					return wf.Cancel()
				}
			}

			if err := wf.Confirm(cmd.Context()); err != nil {
				return err
			}
			<-done
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func loadBook(cmd *cobra.Command, app *App, id string) (*catalog.Book, error) {
	sub := app.catalog.GetBook(id)
	defer sub.Close()
	res, err := query.Await(cmd.Context(), sub)
	if err != nil {
		return nil, err
	}
	if res.Status == query.StatusError {
		return nil, fmt.Errorf("failed to load book %s: %w", id, res.Err)
	}
	b, _ := query.Value[*catalog.Book](res)
	return b, nil
}

func printBookRow(cmd *cobra.Command, b catalog.Book) {
	avail := "unavailable"
	if b.Available {
		avail = fmt.Sprintf("%d available", b.Copies)
	}
	cmd.Printf("%s  %-30s  %-20s  %-11s  %s\n", b.ID, b.Title, b.Author, b.Genre, avail)
}

func printBookDetail(cmd *cobra.Command, b catalog.Book) {
	cmd.Printf("Title:       %s\n", b.Title)
	cmd.Printf("Author:      %s\n", b.Author)
	cmd.Printf("Genre:       %s\n", b.Genre)
	cmd.Printf("ISBN:        %s\n", b.ISBN)
	cmd.Printf("Copies:      %d\n", b.Copies)
	cmd.Printf("Available:   %t\n", b.Available)
	if b.Description != "" {
		cmd.Printf("Description: %s\n", b.Description)
	}
}

func genreList() string {
	parts := make([]string, len(catalog.Genres))
	for i, g := range catalog.Genres {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}
