package appointment

import (
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// ======================================================
// INPUT
// ======================================================

// BookingRequest drives both creates (AppointmentID == 0) and updates.
type BookingRequest struct {
	CompanyID     uint
	ActorID       uint
	RequestID     string
	AppointmentID uint

	CustomerID     uint
	ProfessionalID uint

	Date string // YYYY-MM-DD
	Time string // HH:mm

	Services        []domain.ServiceLineItem
	Products        []domain.ProductLineItem
	DiscountPercent decimal.Decimal
	Notes           string
}

func (r BookingRequest) IsUpdate() bool {
	return r.AppointmentID != 0
}

func (r BookingRequest) operation() string {
	if r.IsUpdate() {
		return "update"
	}
	return "create"
}

type TransitionInput struct {
	CompanyID     uint
	ActorID       uint
	RequestID     string
	AppointmentID uint
	Action        domain.Action
}

type AvailabilityInput struct {
	CompanyID      uint
	ProfessionalID uint
	Date           string
	ServiceIDs     []uint
}
