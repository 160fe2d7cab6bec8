package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Filter struct {
	CompanyID      uint
	ProfessionalID uint
	CustomerID     uint
	From           *time.Time
	To             *time.Time
	Statuses       []Status
}

type OverlapChecker interface {
	// CheckOverlap returns true when no non-cancelled appointment of the
	// professional other than w.ExcludeID overlaps w.
	CheckOverlap(ctx context.Context, w AvailabilityWindow) (bool, error)
}

type StockChecker interface {
	CheckStock(ctx context.Context, productID uint, quantity int) (bool, error)
}

// Store owns the appointment collection. Implementations must guarantee that
// no two non-cancelled appointments of the same professional persist with
// overlapping intervals, even under concurrent submissions, and must apply
// the stock decrement in the same unit of work as the write.
type Store interface {
	OverlapChecker

	List(ctx context.Context, filter Filter) ([]models.Appointment, error)
	Get(ctx context.Context, companyID, id uint) (*models.Appointment, error)
	Create(ctx context.Context, ap *models.Appointment) error
	Update(ctx context.Context, ap *models.Appointment) error

	// SetStatus persists ap.Status only if the stored status still equals from.
	SetStatus(ctx context.Context, ap *models.Appointment, from Status) error
}

type ServiceCatalog interface {
	ListByProfessional(ctx context.Context, companyID, professionalID uint) ([]ServiceCatalogEntry, error)
}

type ProductCatalog interface {
	StockChecker

	List(ctx context.Context, companyID uint) ([]ProductCatalogEntry, error)
}
