package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// GetAvailability lists the free start times of a professional on one day
// for the duration of the selected services.
type GetAvailability struct {
	store    domain.Store
	services domain.ServiceCatalog
	policy   domain.Policy
	clock    TimeProvider
}

func NewGetAvailability(
	store domain.Store,
	services domain.ServiceCatalog,
	policy domain.Policy,
) *GetAvailability {
	return &GetAvailability{
		store:    store,
		services: services,
		policy:   policy,
		clock:    RealTimeProvider{},
	}
}

func (uc *GetAvailability) WithClock(clock TimeProvider) *GetAvailability {
	uc.clock = clock
	return uc
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.TimeSlot, error) {

	dayStart, err := time.ParseInLocation(domain.DateLayout, in.Date, uc.policy.Loc())
	if err != nil {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{
			Field: "date", Code: "invalid_date", Message: "Data inválida.",
		}}}
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	catalog, err := uc.services.ListByProfessional(ctx, in.CompanyID, in.ProfessionalID)
	if err != nil {
		return nil, domain.Wrap("carregar serviços", err)
	}

	lines := make([]domain.ServiceLineItem, 0, len(in.ServiceIDs))
	for _, id := range in.ServiceIDs {
		lines = append(lines, domain.ServiceLineItem{ServiceID: id, Quantity: 1})
	}
	totals := domain.ComputeTotals(lines, nil, decimal.Zero, domain.NewServiceIndex(catalog))

	from, to := dayStart.UTC(), dayEnd.UTC()
	agenda, err := uc.store.List(ctx, domain.Filter{
		CompanyID:      in.CompanyID,
		ProfessionalID: in.ProfessionalID,
		From:           &from,
		To:             &to,
	})
	if err != nil {
		return nil, domain.Wrap("carregar agenda", err)
	}

	now := uc.clock.Now()
	slots := []domain.TimeSlot{}

	for _, clock := range uc.policy.GenerateSlots() {
		res := uc.policy.ValidateWindow(in.Date, clock, now)
		if !res.Valid {
			continue
		}
		start := res.Start

		end := domain.ComputeEndTime(start, totals.TotalDuration)
		w := domain.AvailabilityWindow{
			CompanyID:      in.CompanyID,
			ProfessionalID: in.ProfessionalID,
			Interval:       domain.Interval{Start: start, End: end},
		}
		if len(domain.FindConflicts(w, agenda)) > 0 {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Start: start.Format(domain.TimeLayout),
			End:   end.In(uc.policy.Loc()).Format(domain.TimeLayout),
		})
	}

	return slots, nil
}
