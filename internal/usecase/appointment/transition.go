package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/pkg/logging"
)

// TransitionAppointment runs one status action (confirm, start, complete,
// cancel, no-show) as a single conditional update.
type TransitionAppointment struct {
	store   domain.Store
	clock   TimeProvider
	audit   Auditor
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

func NewTransitionAppointment(
	store domain.Store,
	auditor Auditor,
	m *metrics.BookingMetrics,
	logger *logging.Logger,
) *TransitionAppointment {
	return &TransitionAppointment{
		store:   store,
		clock:   RealTimeProvider{},
		audit:   auditorOrNoop(auditor),
		metrics: m,
		logger:  logger,
	}
}

func (uc *TransitionAppointment) WithClock(clock TimeProvider) *TransitionAppointment {
	uc.clock = clock
	return uc
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Appointment, error) {

	ap, err := uc.store.Get(ctx, in.CompanyID, in.AppointmentID)
	if err != nil {
		uc.metrics.ObserveTransition(string(in.Action), metrics.ResultError)
		return nil, domain.Wrap("carregar agendamento", err)
	}

	from := domain.Status(ap.Status)
	if err := domain.Apply(ap, in.Action, uc.clock.Now().UTC()); err != nil {
		uc.metrics.ObserveTransition(string(in.Action), metrics.ResultRejected)
		uc.logger.Warn("status action rejected",
			"appointment_id", in.AppointmentID,
			"status", from,
			"action", in.Action,
		)
		return nil, err
	}

	if err := uc.store.SetStatus(ctx, ap, from); err != nil {
		result, _ := classify(domain.Wrap("atualizar status", err))
		uc.metrics.ObserveTransition(string(in.Action), result)
		uc.logger.Error("status update failed",
			"appointment_id", in.AppointmentID,
			"action", in.Action,
			"error", err,
		)
		return nil, domain.Wrap("atualizar status", err)
	}

	uc.metrics.ObserveTransition(string(in.Action), metrics.ResultOK)
	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    actor(in.ActorID),
		Action:    "appointment_" + ap.Status,
		Entity:    audit.EntityAppointment,
		EntityID:  &ap.ID,
		RequestID: in.RequestID,
		Metadata: map[string]any{
			"from":   from,
			"action": in.Action,
		},
	})

	uc.logger.Info("appointment status changed",
		"appointment_id", ap.ID,
		"from", from,
		"to", ap.Status,
	)
	return ap, nil
}
