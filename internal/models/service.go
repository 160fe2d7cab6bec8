package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index" json:"company_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `json:"duration"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Active      bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
