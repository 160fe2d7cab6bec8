package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// --------------------------------------------------
// Services
// --------------------------------------------------

type ServiceCatalogGormRepository struct {
	db *gorm.DB
}

func NewServiceCatalogGormRepository(db *gorm.DB) *ServiceCatalogGormRepository {
	return &ServiceCatalogGormRepository{db: db}
}

// ListByProfessional returns the active services the professional performs.
func (r *ServiceCatalogGormRepository) ListByProfessional(
	ctx context.Context,
	companyID uint,
	professionalID uint,
) ([]domain.ServiceCatalogEntry, error) {

	var services []models.Service
	err := r.db.WithContext(ctx).
		Joins("JOIN professional_services ps ON ps.service_id = services.id").
		Where("ps.professional_id = ? AND services.company_id = ? AND services.active = ?",
			professionalID, companyID, true).
		Order("services.name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.ServiceCatalogEntry, 0, len(services))
	for _, s := range services {
		out = append(out, domain.ServiceCatalogEntry{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price,
			Duration: s.DurationMin,
		})
	}
	return out, nil
}

// --------------------------------------------------
// Products
// --------------------------------------------------

type ProductCatalogGormRepository struct {
	db *gorm.DB
}

func NewProductCatalogGormRepository(db *gorm.DB) *ProductCatalogGormRepository {
	return &ProductCatalogGormRepository{db: db}
}

func (r *ProductCatalogGormRepository) List(
	ctx context.Context,
	companyID uint,
) ([]domain.ProductCatalogEntry, error) {

	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}

	out := make([]domain.ProductCatalogEntry, 0, len(products))
	for _, p := range products {
		out = append(out, domain.ProductCatalogEntry{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
			Unit:  p.Unit,
		})
	}
	return out, nil
}

// CheckStock is a point-in-time read; the decrement itself happens inside the
// appointment write.
func (r *ProductCatalogGormRepository) CheckStock(
	ctx context.Context,
	productID uint,
	quantity int,
) (bool, error) {

	var p models.Product
	err := r.db.WithContext(ctx).Select("id", "stock").First(&p, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Stock >= quantity, nil
}

var (
	_ domain.ServiceCatalog = (*ServiceCatalogGormRepository)(nil)
	_ domain.ProductCatalog = (*ProductCatalogGormRepository)(nil)
)
