package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ActionDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type StatusDTO struct {
	Value    string      `json:"value"`
	Label    string      `json:"label"`
	Color    string      `json:"color"`
	Terminal bool        `json:"terminal"`
	Actions  []ActionDTO `json:"actions"`
}

type AppointmentListDTO struct {
	ID               uint            `json:"id"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          time.Time       `json:"end_time"`
	Status           StatusDTO       `json:"status"`
	CustomerName     string          `json:"customer_name"`
	ProfessionalName string          `json:"professional_name"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

type AppointmentDTO struct {
	ID              uint                     `json:"id"`
	CompanyID       uint                     `json:"company_id"`
	CustomerID      uint                     `json:"customer_id"`
	ProfessionalID  uint                     `json:"professional_id"`
	StartTime       time.Time                `json:"start_time"`
	EndTime         time.Time                `json:"end_time"`
	Status          StatusDTO                `json:"status"`
	Services        []domain.ServiceLineItem `json:"services"`
	Products        []domain.ProductLineItem `json:"products"`
	TotalAmount     decimal.Decimal          `json:"total_amount"`
	DiscountPercent decimal.Decimal          `json:"discount_percent"`
	Notes           string                   `json:"notes"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func NewStatusDTO(raw string) StatusDTO {
	st := domain.Status(raw)
	actions := []ActionDTO{}
	for _, a := range domain.AvailableActions(st) {
		actions = append(actions, ActionDTO{Value: string(a), Label: a.Label()})
	}
	return StatusDTO{
		Value:    raw,
		Label:    st.Label(),
		Color:    st.Color(),
		Terminal: st.IsTerminal(),
		Actions:  actions,
	}
}

func NewAppointmentListDTO(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:               ap.ID,
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		Status:           NewStatusDTO(ap.Status),
		CustomerName:     ap.Customer.Name,
		ProfessionalName: ap.Professional.Name,
		TotalAmount:      ap.TotalAmount,
	}
}

func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		CompanyID:       ap.CompanyID,
		CustomerID:      ap.CustomerID,
		ProfessionalID:  ap.ProfessionalID,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		Status:          NewStatusDTO(ap.Status),
		Services:        domain.ServiceLinesFromModel(ap),
		Products:        domain.ProductLinesFromModel(ap),
		TotalAmount:     ap.TotalAmount,
		DiscountPercent: ap.DiscountPercent,
		Notes:           ap.Notes,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
}
