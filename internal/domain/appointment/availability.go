package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps is symmetric; touching endpoints do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

// AvailabilityWindow is the transient argument of an availability check.
// ExcludeID is the appointment being edited, zero on creates.
type AvailabilityWindow struct {
	CompanyID      uint
	ProfessionalID uint
	Interval
	ExcludeID uint
}

// IsObstacle reports whether ap blocks w.
func (w AvailabilityWindow) IsObstacle(ap *models.Appointment) bool {
	if ap.ProfessionalID != w.ProfessionalID {
		return false
	}
	if w.ExcludeID != 0 && ap.ID == w.ExcludeID {
		return false
	}
	if !Status(ap.Status).BlocksAgenda() {
		return false
	}
	return w.Overlaps(Interval{Start: ap.StartTime, End: ap.EndTime})
}

// FindConflicts scans an in-memory agenda. Stores use it when they already
// hold the professional's appointments.
func FindConflicts(w AvailabilityWindow, agenda []models.Appointment) []models.Appointment {
	var out []models.Appointment
	for i := range agenda {
		if w.IsObstacle(&agenda[i]) {
			out = append(out, agenda[i])
		}
	}
	return out
}

// CheckAvailability asks the store whether w is free. The scan itself belongs
// to the store.
func CheckAvailability(ctx context.Context, store OverlapChecker, w AvailabilityWindow) (bool, error) {
	if !w.Valid() {
		v := &ValidationError{}
		v.add("end_time", "invalid_interval", "O horário final deve ser posterior ao inicial.")
		return false, v
	}
	available, err := store.CheckOverlap(ctx, w)
	if err != nil {
		return false, Wrap("verificar disponibilidade", err)
	}
	return available, nil
}

// NeedsAvailabilityCheck is true on creates and on updates that move the
// window or hand the booking to another professional. Edits touching only
// notes, discount or billing fields skip the round trip.
func NeedsAvailabilityCheck(existing *models.Appointment, professionalID uint, window Interval) bool {
	if existing == nil {
		return true
	}
	return existing.ProfessionalID != professionalID ||
		!existing.StartTime.Equal(window.Start) ||
		!existing.EndTime.Equal(window.End)
}
