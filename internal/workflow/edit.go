// internal/workflow/edit.go
package workflow

import (
	"context"
	"errors"
	"fmt"

	"bookhouse/internal/catalog"
)

// Draft holds the editable field values of a book while the edit
// dialog is open.
type Draft struct {
	Title       string
	Author      string
	Genre       catalog.Genre
	ISBN        string
	Image       string
	Copies      int
	Description string
}

// Edit drives the edit dialog for one book. The draft is pre-populated
// from the book's current values when the workflow opens and survives
// failed submissions, so nothing is re-entered on retry.
type Edit struct {
	flow flow
	opts Options

	book  catalog.Book
	svc   catalog.Service
	Draft Draft
}

// NewEdit opens an edit workflow for book.
func NewEdit(book catalog.Book, svc catalog.Service, opts Options) *Edit {
	opts.fill()
	e := &Edit{
		opts: opts,
		book: book,
		svc:  svc,
		Draft: Draft{
			Title:       book.Title,
			Author:      book.Author,
			Genre:       book.Genre,
			ISBN:        book.ISBN,
			Image:       book.Image,
			Copies:      book.Copies,
			Description: book.Description,
		},
	}
	e.flow = flow{
		validate: e.validateDraft,
		submit:   e.doSubmit,
		onClosed: opts.OnClosed,
	}
	e.flow.open()
	return e
}

// Phase reports the dialog's lifecycle state.
func (e *Edit) Phase() Phase { return e.flow.currentPhase() }

// Err returns the most recent validation or submission failure.
func (e *Edit) Err() error { return e.flow.lastErr() }

// Submit saves the draft. A failed mutation keeps the dialog open with
// the entered values intact.
func (e *Edit) Submit(ctx context.Context) error {
	err := e.flow.run(ctx)
	switch {
	case err == nil:
		e.opts.Notifier.Success("Book updated successfully!")
	case err == ErrBusy, err == ErrNotOpen:
	case errors.Is(err, ErrInvalidDraft):
		e.opts.Notifier.Error("Please fill all required fields")
	default:
		e.opts.Notifier.Error("Failed to update book")
	}
	return err
}

// Cancel closes the dialog; refused while submitting.
func (e *Edit) Cancel() error { return e.flow.close() }

// Discard drops the dialog unconditionally, as when the surrounding
// view goes away.
func (e *Edit) Discard() { e.flow.discard() }

func (e *Edit) validateDraft() error {
	d := e.Draft
	if d.Title == "" || d.Author == "" || d.Genre == "" || d.ISBN == "" || d.Image == "" {
		return fmt.Errorf("please fill all required fields")
	}
	if !d.Genre.Valid() {
		return fmt.Errorf("unknown genre %q", d.Genre)
	}
	if d.Copies < 1 {
		return fmt.Errorf("copies must be at least 1")
	}
	return nil
}

func (e *Edit) doSubmit(ctx context.Context) error {
	_, err := e.svc.UpdateBook(ctx, e.book.ID, catalog.UpdateBookInput{
		Title:       e.Draft.Title,
		Author:      e.Draft.Author,
		Genre:       e.Draft.Genre,
		ISBN:        e.Draft.ISBN,
		Image:       e.Draft.Image,
		Copies:      e.Draft.Copies,
		Available:   e.Draft.Copies > 0,
		Description: e.Draft.Description,
	})
	return err
}
