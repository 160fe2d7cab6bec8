package appointment

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UsageType string

const (
	UsageUsed UsageType = "used"
	UsageSold UsageType = "sold"
)

func ParseUsageType(s string) (UsageType, bool) {
	switch u := UsageType(strings.ToLower(strings.TrimSpace(s))); u {
	case UsageUsed, UsageSold:
		return u, true
	}
	return "", false
}

type ServiceLineItem struct {
	ServiceID uint `json:"service_id"`
	Quantity  int  `json:"quantity"`
}

type ProductLineItem struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UsageType UsageType       `json:"usage_type"`
}

// ServiceCatalogEntry is the authoritative price/duration of a service.
type ServiceCatalogEntry struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
}

type ProductCatalogEntry struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Unit  string          `json:"unit"`
}

// ServiceIndex indexes catalog entries by id for the calculator.
type ServiceIndex map[uint]ServiceCatalogEntry

func NewServiceIndex(entries []ServiceCatalogEntry) ServiceIndex {
	idx := make(ServiceIndex, len(entries))
	for _, e := range entries {
		idx[e.ID] = e
	}
	return idx
}

// --------------------------------------------------
// Model conversion
// --------------------------------------------------

func ServiceLinesToModels(lines []ServiceLineItem) []models.AppointmentService {
	out := make([]models.AppointmentService, 0, len(lines))
	for i, l := range lines {
		out = append(out, models.AppointmentService{
			Position:  i,
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
		})
	}
	return out
}

func ProductLinesToModels(lines []ProductLineItem) []models.AppointmentProduct {
	out := make([]models.AppointmentProduct, 0, len(lines))
	for i, l := range lines {
		out = append(out, models.AppointmentProduct{
			Position:  i,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			UsageType: string(l.UsageType),
		})
	}
	return out
}

func ServiceLinesFromModel(ap *models.Appointment) []ServiceLineItem {
	out := make([]ServiceLineItem, 0, len(ap.Services))
	for _, s := range ap.Services {
		out = append(out, ServiceLineItem{ServiceID: s.ServiceID, Quantity: s.Quantity})
	}
	return out
}

func ProductLinesFromModel(ap *models.Appointment) []ProductLineItem {
	out := make([]ProductLineItem, 0, len(ap.Products))
	for _, p := range ap.Products {
		out = append(out, ProductLineItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			UsageType: UsageType(p.UsageType),
		})
	}
	return out
}
