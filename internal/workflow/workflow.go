// internal/workflow/workflow.go
package workflow

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DisplayDelay is how long a workflow lingers on its success state
// before closing.
const DisplayDelay = 1500 * time.Millisecond

// Phase is the lifecycle state of a workflow dialog.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseForm
	PhaseSubmitting
	PhaseSuccess
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseForm:
		return "form"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy means a submission is in flight; the dialog rejects a
	// second submission and cannot be cancelled until it resolves.
	ErrBusy = errors.New("submission in progress")
	// ErrNotOpen means the workflow is not accepting a submission.
	ErrNotOpen = errors.New("workflow not open")
	// ErrInvalidDraft marks a validation failure caught before any
	// network call.
	ErrInvalidDraft = errors.New("invalid draft")
)

// Notifier is the transient notification surface. Calls are
// fire-and-forget; the workflow consumes no return value.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator receives path changes after successful workflows.
type Navigator interface {
	Navigate(path string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// NopNavigator ignores navigation requests.
type NopNavigator struct{}

func (NopNavigator) Navigate(string) {}

// Options configures a workflow instance.
type Options struct {
	Notifier     Notifier
	Navigator    Navigator
	SuccessDelay time.Duration
	// OnClosed notifies the caller once the dialog is gone, so views
	// holding their own query handles can refetch.
	OnClosed func()
	// Now overrides the clock, for tests.
	Now func() time.Time
}

func (o *Options) fill() {
	if o.Notifier == nil {
		o.Notifier = NopNotifier{}
	}
	if o.Navigator == nil {
		o.Navigator = NopNavigator{}
	}
	if o.SuccessDelay == 0 {
		o.SuccessDelay = DisplayDelay
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// flow is the shared confirm-workflow state machine: open a dialog,
// validate a draft, run one mutation, surface the outcome. The borrow,
// edit and delete workflows all layer on it.
type flow struct {
	mu    sync.Mutex
	phase Phase
	err   error

	validate func() error
	submit   func(ctx context.Context) error
	// onSuccess runs after the mutation succeeds, before the close
	// delay: notifications, navigation.
	onSuccess func()
	// lingerOnSuccess keeps the Success phase visible for
	// successDelay before closing; when false the flow closes as soon
	// as the mutation lands.
	lingerOnSuccess bool
	successDelay    time.Duration
	onClosed        func()
}

func (f *flow) open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase == PhaseIdle {
		f.phase = PhaseForm
		f.err = nil
	}
}

func (f *flow) currentPhase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

func (f *flow) lastErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// run performs one submission attempt. Validation failures and
// mutation failures both land the flow back in PhaseForm with the
// draft untouched; only validation happens before any network call.
func (f *flow) run(ctx context.Context) error {
	f.mu.Lock()
	switch f.phase {
	case PhaseSubmitting:
		f.mu.Unlock()
		return ErrBusy
	case PhaseForm:
	default:
		f.mu.Unlock()
		return ErrNotOpen
	}
	if f.validate != nil {
		if err := f.validate(); err != nil {
			f.err = err
			f.mu.Unlock()
			return errors.Join(ErrInvalidDraft, err)
		}
	}
	f.phase = PhaseSubmitting
	f.err = nil
	f.mu.Unlock()

	err := f.submit(ctx)

	f.mu.Lock()
	if f.phase == PhaseClosed {
		// Dialog was discarded while the mutation was in flight;
		// never resurrect its state.
		f.mu.Unlock()
		return err
	}
	if err != nil {
		f.phase = PhaseForm
		f.err = err
		f.mu.Unlock()
		return err
	}
	f.phase = PhaseSuccess
	f.mu.Unlock()

	if f.onSuccess != nil {
		f.onSuccess()
	}
	if f.lingerOnSuccess {
		time.AfterFunc(f.successDelay, f.finish)
	} else {
		f.finish()
	}
	return nil
}

func (f *flow) finish() {
	f.mu.Lock()
	if f.phase == PhaseClosed {
		f.mu.Unlock()
		return
	}
	f.phase = PhaseClosed
	closed := f.onClosed
	f.mu.Unlock()

	if closed != nil {
		closed()
	}
}

// discard models the dialog unmounting, whatever the phase. A
// mutation still in flight resolves against the closed flow and its
// outcome is dropped; no callbacks fire.
func (f *flow) discard() {
	f.mu.Lock()
	f.phase = PhaseClosed
	f.mu.Unlock()
}

// close cancels the dialog. Refused while a submission is in flight.
func (f *flow) close() error {
	f.mu.Lock()
	if f.phase == PhaseSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.phase == PhaseClosed {
		f.mu.Unlock()
		return nil
	}
	f.phase = PhaseClosed
	closed := f.onClosed
	f.mu.Unlock()

	if closed != nil {
		closed()
	}
	return nil
}
