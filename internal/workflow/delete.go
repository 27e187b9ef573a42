// internal/workflow/delete.go
package workflow

import (
	"context"

	"bookhouse/internal/catalog"
)

// Delete drives the two-step delete dialog. Opening it is not
// destructive; only the explicit Confirm call runs the delete
// mutation. While deleting, cancel is disabled.
type Delete struct {
	flow flow
	opts Options

	book catalog.Book
	svc  catalog.Service

	// deleted is written by the single in-flight submission before the
	// close timer is armed, so the close callback reads it safely.
	deleted bool
}

// NewDelete opens a delete confirmation for book.
func NewDelete(book catalog.Book, svc catalog.Service, opts Options) *Delete {
	opts.fill()
	d := &Delete{
		opts: opts,
		book: book,
		svc:  svc,
	}
	d.flow = flow{
		submit:          d.doSubmit,
		lingerOnSuccess: true,
		successDelay:    opts.SuccessDelay,
		onClosed:        d.closed,
	}
	d.flow.open()
	return d
}

// Phase reports the dialog's lifecycle state. PhaseForm is the
// confirmation prompt.
func (d *Delete) Phase() Phase { return d.flow.currentPhase() }

// Err returns the most recent submission failure.
func (d *Delete) Err() error { return d.flow.lastErr() }

// Confirm runs the delete. On failure the dialog reverts to the
// confirmation prompt and the book is not assumed deleted. On success
// a transient acknowledgement shows before the dialog closes.
func (d *Delete) Confirm(ctx context.Context) error {
	err := d.flow.run(ctx)
	if err != nil && err != ErrBusy && err != ErrNotOpen {
		d.opts.Notifier.Error("Failed to delete book")
	}
	return err
}

// Cancel dismisses the confirmation; refused while deleting.
func (d *Delete) Cancel() error { return d.flow.close() }

// Discard drops the dialog unconditionally, as when the surrounding
// view goes away.
func (d *Delete) Discard() { d.flow.discard() }

func (d *Delete) doSubmit(ctx context.Context) error {
	if err := d.svc.DeleteBook(ctx, d.book.ID); err != nil {
		return err
	}
	d.deleted = true
	return nil
}

func (d *Delete) closed() {
	// The success toast fires at close time, after the transient
	// acknowledgement has been shown.
	if d.deleted {
		d.opts.Notifier.Success("Book deleted successfully")
	}
	if d.opts.OnClosed != nil {
		d.opts.OnClosed()
	}
}
