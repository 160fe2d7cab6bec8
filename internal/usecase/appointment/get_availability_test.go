package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

func startsOf(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestGetAvailability_FiltersPastBusyAndClosing(t *testing.T) {
	cancelled := scheduled(2, at(10, 0), at(10, 30))
	cancelled.Status = string(domain.StatusCancelled)
	store := newFakeStore(scheduled(1, at(14, 0), at(15, 0)), cancelled)

	uc := NewGetAvailability(
		store,
		fakeServices{entries: []domain.ServiceCatalogEntry{haircut}},
		domain.DefaultPolicy(time.UTC),
	).WithClock(fixedClock{t: at(9, 10)})

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		CompanyID: companyID, ProfessionalID: professionalID,
		Date: "2024-06-10", ServiceIDs: []uint{haircutID},
	})
	require.NoError(t, err)

	starts := startsOf(slots)
	assert.Len(t, starts, 19)
	assert.Equal(t, "09:30", starts[0])
	assert.Contains(t, starts, "10:00")
	assert.Contains(t, starts, "13:30")
	assert.Contains(t, starts, "15:00")
	assert.NotContains(t, starts, "09:00")
	assert.NotContains(t, starts, "14:00")
	assert.NotContains(t, starts, "14:30")
	assert.NotContains(t, starts, "20:00")
	assert.Equal(t, domain.TimeSlot{Start: "19:30", End: "20:00"}, slots[len(slots)-1])
}

func TestGetAvailability_LongerServicesShrinkTheDay(t *testing.T) {
	long := haircut
	long.Duration = 90
	store := newFakeStore(scheduled(1, at(14, 0), at(14, 30)))

	uc := NewGetAvailability(
		store,
		fakeServices{entries: []domain.ServiceCatalogEntry{long}},
		domain.DefaultPolicy(time.UTC),
	).WithClock(sundayNoon)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		CompanyID: companyID, ProfessionalID: professionalID,
		Date: "2024-06-10", ServiceIDs: []uint{haircutID},
	})
	require.NoError(t, err)

	starts := startsOf(slots)
	assert.Contains(t, starts, "12:30")
	assert.NotContains(t, starts, "13:00")
	assert.NotContains(t, starts, "12:45")
	assert.Contains(t, starts, "14:30")
}

func TestGetAvailability_ClosedDayIsEmpty(t *testing.T) {
	uc := NewGetAvailability(newFakeStore(), fakeServices{}, domain.DefaultPolicy(time.UTC)).
		WithClock(sundayNoon)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		CompanyID: companyID, ProfessionalID: professionalID, Date: "2024-06-16",
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_InvalidDate(t *testing.T) {
	uc := NewGetAvailability(newFakeStore(), fakeServices{}, domain.DefaultPolicy(time.UTC))

	_, err := uc.Execute(context.Background(), AvailabilityInput{Date: "10/06/2024"})
	var v *domain.ValidationError
	assert.ErrorAs(t, err, &v)
}

func TestGetAvailability_CatalogFailure(t *testing.T) {
	uc := NewGetAvailability(
		newFakeStore(),
		fakeServices{err: errors.New("timeout")},
		domain.DefaultPolicy(time.UTC),
	)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		CompanyID: companyID, ProfessionalID: professionalID, Date: "2024-06-10",
	})
	var ce *domain.CollaboratorError
	assert.ErrorAs(t, err, &ce)
}
