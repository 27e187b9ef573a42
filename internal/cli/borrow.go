// internal/cli/borrow.go
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookhouse/internal/borrow"
	"bookhouse/internal/query"
	"bookhouse/internal/workflow"
)

func newBorrowCmd(app *App) *cobra.Command {
	var quantity int
	var due string

	cmd := &cobra.Command{
		Use:   "borrow <book-id>",
		Short: "Borrow copies of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := loadBook(cmd, app, args[0])
			if err != nil {
				return err
			}

			dueDate, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", due)
			}

			done := make(chan struct{})
			wf := workflow.NewBorrow(*book, app.borrows, workflow.Options{
				Notifier:     toastNotifier{},
				Navigator:    printNavigator{},
				SuccessDelay: app.cfg.Workflow.SuccessDelay,
				OnClosed:     func() { close(done) },
			})
			wf.SetQuantity(quantity)
			wf.SetDueDate(dueDate)

			if err := wf.Submit(cmd.Context()); err != nil {
				return err
			}
			<-done

			cmd.Printf("Borrowed %d of %q, due %s\n", quantity, book.Title, dueDate.Format("Jan 02, 2006"))
			return nil
		},
	}
	cmd.Flags().IntVar(&quantity, "quantity", 1, "copies to borrow (max "+fmt.Sprint(workflow.MaxBorrowQuantity)+")")
	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	cmd.MarkFlagRequired("due")
	return cmd
}

func newBorrowsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "borrows",
		Short: "Show the borrow summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			sub := app.borrows.ListBorrows()
			defer sub.Close()
			res, err := query.Await(cmd.Context(), sub)
			if err != nil {
				return err
			}
			if res.Status == query.StatusError {
				return fmt.Errorf("failed to load borrow records: %w", res.Err)
			}

			list, _ := query.Value[*borrow.RecordList](res)
			if len(list.Data) == 0 {
				cmd.Println("No borrowed books found.")
				return nil
			}
			for _, rec := range list.Data {
				cmd.Printf("%-30s  ISBN %-13s  total borrowed %d  due %s\n",
					rec.Book.Title, rec.Book.ISBN, rec.TotalQuantity, rec.DueDate.Format("Jan 02, 2006"))
			}
			return nil
		},
	}
}
