// internal/workflow/borrow.go
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookhouse/internal/borrow"
	"bookhouse/internal/catalog"
)

// MaxBorrowQuantity caps how many copies one transaction may take,
// regardless of stock.
const MaxBorrowQuantity = 5

// Borrow drives the borrow dialog for one book: quantity and due date
// entry, a single borrow-creation mutation, then navigation to the
// borrow summary.
type Borrow struct {
	flow flow
	opts Options

	book catalog.Book
	svc  borrow.Service

	quantity int
	dueDate  time.Time
}

// NewBorrow opens a borrow workflow for book.
func NewBorrow(book catalog.Book, svc borrow.Service, opts Options) *Borrow {
	opts.fill()
	b := &Borrow{
		opts:     opts,
		book:     book,
		svc:      svc,
		quantity: 1,
	}
	b.flow = flow{
		validate:        b.validateDraft,
		submit:          b.doSubmit,
		onSuccess:       b.succeeded,
		lingerOnSuccess: true,
		successDelay:    opts.SuccessDelay,
		onClosed:        opts.OnClosed,
	}
	b.flow.open()
	return b
}

// MaxQuantity is the largest quantity the form accepts for this book.
func (b *Borrow) MaxQuantity() int {
	if b.book.Copies < MaxBorrowQuantity {
		return b.book.Copies
	}
	return MaxBorrowQuantity
}

// SetQuantity updates the draft quantity. Ignored while submitting.
func (b *Borrow) SetQuantity(q int) {
	if b.flow.currentPhase() == PhaseForm {
		b.quantity = q
	}
}

// SetDueDate updates the draft due date. Ignored while submitting.
func (b *Borrow) SetDueDate(d time.Time) {
	if b.flow.currentPhase() == PhaseForm {
		b.dueDate = d
	}
}

// Quantity returns the draft quantity; it survives a failed submission.
func (b *Borrow) Quantity() int { return b.quantity }

// DueDate returns the draft due date; it survives a failed submission.
func (b *Borrow) DueDate() time.Time { return b.dueDate }

// Phase reports the dialog's lifecycle state.
func (b *Borrow) Phase() Phase { return b.flow.currentPhase() }

// Err returns the most recent validation or submission failure.
func (b *Borrow) Err() error { return b.flow.lastErr() }

// Submit confirms the borrow. Invalid drafts are rejected before any
// network call; a failed mutation returns the dialog to the form with
// the entered quantity and date intact.
func (b *Borrow) Submit(ctx context.Context) error {
	err := b.flow.run(ctx)
	switch {
	case err == nil, err == ErrBusy, err == ErrNotOpen:
	case errors.Is(err, ErrInvalidDraft):
		b.opts.Notifier.Error("Please fill all fields correctly")
	default:
		b.opts.Notifier.Error("Failed to borrow book.")
	}
	return err
}

// Cancel closes the dialog; refused while submitting.
func (b *Borrow) Cancel() error { return b.flow.close() }

// Discard drops the dialog unconditionally, as when the surrounding
// view goes away. An unresolved mutation's outcome is ignored.
func (b *Borrow) Discard() { b.flow.discard() }

func (b *Borrow) validateDraft() error {
	if b.quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	if max := b.MaxQuantity(); b.quantity > max {
		return fmt.Errorf("only %d copies available", max)
	}
	if b.dueDate.IsZero() {
		return fmt.Errorf("due date is required")
	}
	today := b.opts.Now().Truncate(24 * time.Hour)
	if b.dueDate.Before(today) {
		return fmt.Errorf("due date cannot be in the past")
	}
	return nil
}

func (b *Borrow) doSubmit(ctx context.Context) error {
	_, err := b.svc.CreateBorrow(ctx, borrow.Input{
		BookID:   b.book.ID,
		Quantity: b.quantity,
		DueDate:  b.dueDate,
	})
	return err
}

func (b *Borrow) succeeded() {
	b.opts.Navigator.Navigate("/borrow-book")
}
