package service

import (
	"errors"

	"github.com/vinocave/vinocave-backend/internal/app/model"
)

// RemovalState is a step of the confirm-then-delete removal interaction
type RemovalState int

const (
	RemovalIdle RemovalState = iota
	RemovalSelected
	RemovalReasonChosen
	RemovalConfirmPending
)

var (
	ErrRemovalNoSelection    = errors.New("no wine selected for removal")
	ErrRemovalNoReason       = errors.New("no removal reason chosen")
	ErrRemovalNotPending     = errors.New("removal is not awaiting confirmation")
	ErrRemovalAlreadyPending = errors.New("removal is awaiting confirmation")
)

// RemovalWorkflow drives the two-step removal of a bottle: the user
// opens a wine, picks one of the fixed reasons, sees a blocking
// confirmation naming the wine and the reason, and only then is the
// delete committed. Cancelling at any point returns to idle with no
// side effects. The workflow is single-user and not safe for
// concurrent use; each interaction owns its own instance.
type RemovalWorkflow struct {
	cellarService CellarService
	userID        uint

	state    RemovalState
	selected *model.CellarWine
	reason   model.RemovalReason
}

func NewRemovalWorkflow(cellarService CellarService, userID uint) *RemovalWorkflow {
	return &RemovalWorkflow{
		cellarService: cellarService,
		userID:        userID,
		state:         RemovalIdle,
	}
}

// State returns the current step
func (w *RemovalWorkflow) State() RemovalState {
	return w.state
}

// Selected returns the wine currently staged for removal, nil when idle
func (w *RemovalWorkflow) Selected() *model.CellarWine {
	return w.selected
}

// Reason returns the chosen reason, empty until one is chosen
func (w *RemovalWorkflow) Reason() model.RemovalReason {
	return w.reason
}

// Select stages a cellar wine for removal. Re-selecting while a
// selection or reason is staged replaces it; selecting while the
// confirmation prompt is open is rejected.
func (w *RemovalWorkflow) Select(item *model.CellarWine) error {
	if w.state == RemovalConfirmPending {
		return ErrRemovalAlreadyPending
	}
	w.selected = item
	w.reason = ""
	w.state = RemovalSelected
	return nil
}

// ChooseReason records one of the fixed removal reasons for the staged
// wine. Only "other" covers anything outside the five named categories;
// free text is not accepted.
func (w *RemovalWorkflow) ChooseReason(reason model.RemovalReason) error {
	if w.state != RemovalSelected && w.state != RemovalReasonChosen {
		return ErrRemovalNoSelection
	}
	if !model.IsValidRemovalReason(reason) {
		return ErrInvalidRemovalReason
	}
	w.reason = reason
	w.state = RemovalReasonChosen
	return nil
}

// RequestConfirm opens the blocking confirmation step
func (w *RemovalWorkflow) RequestConfirm() error {
	if w.state != RemovalReasonChosen {
		return ErrRemovalNoReason
	}
	w.state = RemovalConfirmPending
	return nil
}

// Confirm commits the staged removal. Whatever the outcome, the
// workflow returns to idle; a failed delete surfaces its error and
// leaves nothing staged.
func (w *RemovalWorkflow) Confirm() error {
	if w.state != RemovalConfirmPending {
		return ErrRemovalNotPending
	}

	item, reason := w.selected, w.reason
	w.reset()

	return w.cellarService.RemoveWine(w.userID, item.ID, reason)
}

// Cancel discards the staged selection and reason with no side effects
func (w *RemovalWorkflow) Cancel() {
	w.reset()
}

func (w *RemovalWorkflow) reset() {
	w.state = RemovalIdle
	w.selected = nil
	w.reason = ""
}
