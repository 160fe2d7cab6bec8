package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Apply moves ap through action and stamps the matching timestamp. ap is left
// untouched when the transition is illegal.
func Apply(ap *models.Appointment, action Action, now time.Time) error {
	next, err := Next(Status(ap.Status), action)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	switch next {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusInProgress:
		ap.StartedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusScheduled, StatusNoShow:
	}
	return nil
}

// EnsureEditable guards line item, time, professional and discount edits.
func EnsureEditable(ap *models.Appointment) error {
	st := Status(ap.Status)
	if !st.CanEdit() {
		return &NotEditableError{Status: st}
	}
	return nil
}
