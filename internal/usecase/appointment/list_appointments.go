package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
)

type ListAppointments struct {
	store domain.Store
}

func NewListAppointments(store domain.Store) *ListAppointments {
	return &ListAppointments{store: store}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.Filter,
) ([]dto.AppointmentListDTO, error) {

	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{
			Field: "to", Code: "invalid_range", Message: "Período inválido.",
		}}}
	}

	appointments, err := uc.store.List(ctx, filter)
	if err != nil {
		return nil, domain.Wrap("listar agendamentos", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		out = append(out, dto.NewAppointmentListDTO(&appointments[i]))
	}

	return out, nil
}

type GetAppointment struct {
	store domain.Store
}

func NewGetAppointment(store domain.Store) *GetAppointment {
	return &GetAppointment{store: store}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	companyID uint,
	appointmentID uint,
) (*dto.AppointmentDTO, error) {

	ap, err := uc.store.Get(ctx, companyID, appointmentID)
	if err != nil {
		return nil, domain.Wrap("carregar agendamento", err)
	}

	out := dto.NewAppointmentDTO(ap)
	return &out, nil
}
