package models

import "time"

type Professional struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `gorm:"index" json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Active bool   `gorm:"default:true" json:"active"`

	// Services this professional performs.
	Services []Service `gorm:"many2many:professional_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
