package appointment

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Policy holds the business hours a booking window must respect.
type Policy struct {
	IntervalMinutes int
	OpenHour        int
	CloseHour       int
	ClosedWeekdays  []time.Weekday
	Location        *time.Location
}

// DefaultPolicy is 08:00–20:00 in 30 minute steps, closed on Sundays.
func DefaultPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{
		IntervalMinutes: 30,
		OpenHour:        8,
		CloseHour:       20,
		ClosedWeekdays:  []time.Weekday{time.Sunday},
		Location:        loc,
	}
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type WindowResult struct {
	Valid  bool      `json:"valid"`
	Reason string    `json:"reason,omitempty"`
	Start  time.Time `json:"-"`
}

// GenerateSlots lists candidate start times from OpenHour:00 up to and
// including CloseHour:00. The closing hour itself is returned; ValidateWindow
// is what rejects it.
func (p Policy) GenerateSlots() []string {
	step := p.IntervalMinutes
	if step <= 0 {
		step = 30
	}

	var slots []string
	for m := p.OpenHour * 60; m <= p.CloseHour*60; m += step {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// ComputeEndTime adds the booked duration with calendar arithmetic, so hour
// and day rollover come for free.
func ComputeEndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(EffectiveDuration(durationMinutes)) * time.Minute)
}

// ParseStart interprets date (YYYY-MM-DD) and clock (HH:MM) in the policy
// location.
func (p Policy) ParseStart(date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, p.Loc())
}

// ValidateWindow parses and validates a date/time pair against now.
func (p Policy) ValidateWindow(date, clock string, now time.Time) WindowResult {
	start, err := p.ParseStart(date, clock)
	if err != nil {
		return WindowResult{Reason: "Data ou hora inválida."}
	}
	return p.ValidateStart(start, now)
}

// ValidateStart rejects past instants, closed weekdays and hours outside
// [OpenHour, CloseHour).
func (p Policy) ValidateStart(start, now time.Time) WindowResult {
	local := start.In(p.Loc())

	if local.Before(now) {
		return WindowResult{Reason: "Não é possível agendar em data ou horário passado."}
	}

	for _, wd := range p.ClosedWeekdays {
		if local.Weekday() == wd {
			return WindowResult{Reason: fmt.Sprintf("Não há atendimento em %s.", weekdayName(wd))}
		}
	}

	if local.Hour() < p.OpenHour || local.Hour() >= p.CloseHour {
		return WindowResult{Reason: fmt.Sprintf(
			"Horário fora do expediente (%02d:00 às %02d:00).", p.OpenHour, p.CloseHour,
		)}
	}

	return WindowResult{Valid: true, Start: start}
}

// Loc is the policy location, UTC when unset.
func (p Policy) Loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func weekdayName(wd time.Weekday) string {
	switch wd {
	case time.Sunday:
		return "domingos"
	case time.Monday:
		return "segundas-feiras"
	case time.Tuesday:
		return "terças-feiras"
	case time.Wednesday:
		return "quartas-feiras"
	case time.Thursday:
		return "quintas-feiras"
	case time.Friday:
		return "sextas-feiras"
	case time.Saturday:
		return "sábados"
	}
	return wd.String()
}
