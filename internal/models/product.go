package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index" json:"company_id"`

	Name  string          `gorm:"size:100;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock int             `gorm:"not null;default:0" json:"stock"`
	Unit  string          `gorm:"size:20" json:"unit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
