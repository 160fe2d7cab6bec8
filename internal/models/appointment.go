package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint `gorm:"index" json:"company_id"`

	CustomerID uint     `gorm:"index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ProfessionalID uint         `gorm:"index" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`

	Notes string `gorm:"size:255" json:"notes"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`
	Products []AppointmentProduct `gorm:"constraint:OnDelete:CASCADE;" json:"products"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is one service line item, kept in submission order by Position.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"-"`
	AppointmentID uint `gorm:"index" json:"-"`
	Position      int  `json:"-"`

	ServiceID uint `json:"service_id"`
	Quantity  int  `json:"quantity"`
}

type AppointmentProduct struct {
	ID            uint `gorm:"primaryKey" json:"-"`
	AppointmentID uint `gorm:"index" json:"-"`
	Position      int  `json:"-"`

	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	UsageType string          `gorm:"size:10" json:"usage_type"`
}
