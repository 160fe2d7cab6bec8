package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/pkg/logging"
)

func newTransition(store *fakeStore, auditor Auditor) *TransitionAppointment {
	return NewTransitionAppointment(store, auditor, nil, logging.Discard()).WithClock(sundayNoon)
}

func TestTransition_ConfirmStampsTimestamp(t *testing.T) {
	store := newFakeStore(scheduled(1, at(14, 0), at(14, 30)))
	auditor := &recordingAuditor{}

	ap, err := newTransition(store, auditor).Execute(context.Background(), TransitionInput{
		CompanyID: companyID, AppointmentID: 1, Action: domain.ActionConfirm,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	assert.Equal(t, sundayNoon.t, *ap.ConfirmedAt)
	assert.Equal(t, string(domain.StatusConfirmed), store.row(1).Status)
	assert.Equal(t, []string{"appointment_confirmed"}, auditor.actions())
}

func TestTransition_FullLifecycle(t *testing.T) {
	store := newFakeStore(scheduled(1, at(14, 0), at(14, 30)))
	uc := newTransition(store, nil)

	for _, action := range []domain.Action{domain.ActionConfirm, domain.ActionStart, domain.ActionComplete} {
		_, err := uc.Execute(context.Background(), TransitionInput{
			CompanyID: companyID, AppointmentID: 1, Action: action,
		})
		require.NoError(t, err, action)
	}

	row := store.row(1)
	assert.Equal(t, string(domain.StatusCompleted), row.Status)
	assert.NotNil(t, row.StartedAt)
	assert.NotNil(t, row.CompletedAt)
}

func TestTransition_IllegalActionLeavesStatus(t *testing.T) {
	done := scheduled(1, at(14, 0), at(14, 30))
	done.Status = string(domain.StatusCompleted)
	store := newFakeStore(done)

	_, err := newTransition(store, nil).Execute(context.Background(), TransitionInput{
		CompanyID: companyID, AppointmentID: 1, Action: domain.ActionConfirm,
	})

	var it *domain.InvalidTransitionError
	require.ErrorAs(t, err, &it)
	assert.Equal(t, domain.StatusCompleted, it.From)
	assert.Equal(t, string(domain.StatusCompleted), store.row(1).Status)
	assert.Zero(t, store.statusSets)
}

func TestTransition_CancelFromScheduled(t *testing.T) {
	store := newFakeStore(scheduled(1, at(14, 0), at(14, 30)))

	ap, err := newTransition(store, nil).Execute(context.Background(), TransitionInput{
		CompanyID: companyID, AppointmentID: 1, Action: domain.ActionCancel,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)
	assert.NotNil(t, ap.CancelledAt)
}

func TestTransition_ConcurrentChangeSurfacesAsCollaboratorError(t *testing.T) {
	store := newFakeStore(scheduled(1, at(14, 0), at(14, 30)))
	uc := newTransition(store, nil)

	// another request cancels between the read and the conditional write
	racing := &racingStore{fakeStore: store}
	uc.store = racing

	_, err := uc.Execute(context.Background(), TransitionInput{
		CompanyID: companyID, AppointmentID: 1, Action: domain.ActionConfirm,
	})

	var ce *domain.CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, domain.ErrStaleStatus)
	assert.Contains(t, ce.UserMessage(), "alterado por outro usuário")
	assert.Equal(t, string(domain.StatusCancelled), store.row(1).Status)
}

func TestTransition_UnknownAppointment(t *testing.T) {
	_, err := newTransition(newFakeStore(), nil).Execute(context.Background(), TransitionInput{
		CompanyID: companyID, AppointmentID: 5, Action: domain.ActionConfirm,
	})
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

type racingStore struct {
	*fakeStore
}

func (r *racingStore) SetStatus(ctx context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	row := r.rows[ap.ID]
	row.Status = string(domain.StatusCancelled)
	r.rows[ap.ID] = row
	r.mu.Unlock()
	return r.fakeStore.SetStatus(ctx, ap, from)
}
