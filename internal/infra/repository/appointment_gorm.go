package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Professional").
		Preload("Services", byPosition).
		Preload("Products", byPosition).
		Where("company_id = ?", f.CompanyID)

	if f.ProfessionalID != 0 {
		q = q.Where("professional_id = ?", f.ProfessionalID)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.From != nil {
		q = q.Where("end_time > ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time < ?", *f.To)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	companyID uint,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Professional").
		Preload("Services", byPosition).
		Preload("Products", byPosition).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Entity: "appointment", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) CheckOverlap(
	ctx context.Context,
	w domain.AvailabilityWindow,
) (bool, error) {
	n, err := countOverlaps(r.db.WithContext(ctx), w)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// countOverlaps counts non-cancelled appointments of the professional whose
// half-open interval intersects w.
func countOverlaps(tx *gorm.DB, w domain.AvailabilityWindow) (int64, error) {
	q := tx.Model(&models.Appointment{}).
		Where(
			"company_id = ? AND professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			w.CompanyID,
			w.ProfessionalID,
			string(domain.StatusCancelled),
			w.End,
			w.Start,
		)
	if w.ExcludeID != 0 {
		q = q.Where("id <> ?", w.ExcludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

// lockProfessional serializes writes to one professional's agenda for the
// rest of the transaction.
func lockProfessional(tx *gorm.DB, companyID, professionalID uint) error {
	var p models.Professional
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND company_id = ?", professionalID, companyID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Entity: "professional", ID: professionalID}
	}
	return err
}

func assertFree(tx *gorm.DB, ap *models.Appointment) error {
	w := domain.AvailabilityWindow{
		CompanyID:      ap.CompanyID,
		ProfessionalID: ap.ProfessionalID,
		Interval:       domain.Interval{Start: ap.StartTime, End: ap.EndTime},
		ExcludeID:      ap.ID,
	}
	n, err := countOverlaps(tx, w)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ConflictError{
			ProfessionalID: ap.ProfessionalID,
			Start:          ap.StartTime,
			End:            ap.EndTime,
		}
	}
	return nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProfessional(tx, ap.CompanyID, ap.ProfessionalID); err != nil {
			return err
		}
		if err := assertFree(tx, ap); err != nil {
			return err
		}
		if err := reserveStock(tx, ap.CompanyID, ap.Products); err != nil {
			return err
		}
		return tx.Omit("Customer", "Professional").Create(ap).Error
	})
	return mapWriteError(err, ap)
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockEditable(tx, ap.CompanyID, ap.ID); err != nil {
			return err
		}
		if err := lockProfessional(tx, ap.CompanyID, ap.ProfessionalID); err != nil {
			return err
		}
		if err := assertFree(tx, ap); err != nil {
			return err
		}

		var previous []models.AppointmentProduct
		if err := tx.Where("appointment_id = ?", ap.ID).Find(&previous).Error; err != nil {
			return err
		}
		if err := releaseStock(tx, ap.CompanyID, previous); err != nil {
			return err
		}
		if err := reserveStock(tx, ap.CompanyID, ap.Products); err != nil {
			return err
		}

		if err := tx.Where("appointment_id = ?", ap.ID).Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("appointment_id = ?", ap.ID).Delete(&models.AppointmentProduct{}).Error; err != nil {
			return err
		}

		// status and lifecycle stamps belong to SetStatus
		ap.UpdatedAt = time.Now()
		err := tx.Model(&models.Appointment{}).
			Where("id = ? AND company_id = ?", ap.ID, ap.CompanyID).
			Updates(map[string]any{
				"customer_id":      ap.CustomerID,
				"professional_id":  ap.ProfessionalID,
				"start_time":       ap.StartTime,
				"end_time":         ap.EndTime,
				"total_amount":     ap.TotalAmount,
				"discount_percent": ap.DiscountPercent,
				"notes":            ap.Notes,
				"updated_at":       ap.UpdatedAt,
			}).Error
		if err != nil {
			return err
		}

		for i := range ap.Services {
			ap.Services[i].ID = 0
			ap.Services[i].AppointmentID = ap.ID
		}
		for i := range ap.Products {
			ap.Products[i].ID = 0
			ap.Products[i].AppointmentID = ap.ID
		}
		if len(ap.Services) > 0 {
			if err := tx.Create(&ap.Services).Error; err != nil {
				return err
			}
		}
		if len(ap.Products) > 0 {
			if err := tx.Create(&ap.Products).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return mapWriteError(err, ap)
}

// lockEditable locks the appointment row and re-reads its status, so a
// transition that landed after the caller's read is not overwritten.
func lockEditable(tx *gorm.DB, companyID, id uint) error {
	var row models.Appointment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "status").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Entity: "appointment", ID: id}
	}
	if err != nil {
		return err
	}
	return domain.EnsureEditable(&row)
}

// SetStatus is a compare-and-set on the stored status. Cancelling a booking
// that has not started yet returns its products to stock.
func (r *AppointmentGormRepository) SetStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND company_id = ? AND status = ?", ap.ID, ap.CompanyID, string(from)).
			Updates(map[string]any{
				"status":       ap.Status,
				"confirmed_at": ap.ConfirmedAt,
				"started_at":   ap.StartedAt,
				"completed_at": ap.CompletedAt,
				"cancelled_at": ap.CancelledAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrStaleStatus
		}

		if domain.Status(ap.Status) == domain.StatusCancelled &&
			(from == domain.StatusScheduled || from == domain.StatusConfirmed) {
			return releaseStock(tx, ap.CompanyID, ap.Products)
		}
		return nil
	})
}

// --------------------------------------------------
// Stock
// --------------------------------------------------

func reserveStock(tx *gorm.DB, companyID uint, lines []models.AppointmentProduct) error {
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND company_id = ? AND stock >= ?", line.ProductID, companyID, line.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.StockError{ProductID: line.ProductID}
		}
	}
	return nil
}

func releaseStock(tx *gorm.DB, companyID uint, lines []models.AppointmentProduct) error {
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		err := tx.Model(&models.Product{}).
			Where("id = ? AND company_id = ?", line.ProductID, companyID).
			UpdateColumn("stock", gorm.Expr("stock + ?", line.Quantity)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func mapWriteError(err error, ap *models.Appointment) error {
	if err != nil && httperr.IsExclusionConflict(err) {
		return &domain.ConflictError{
			ProfessionalID: ap.ProfessionalID,
			Start:          ap.StartTime,
			End:            ap.EndTime,
		}
	}
	return err
}

// Compile-time check
var _ domain.Store = (*AppointmentGormRepository)(nil)
