package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// ListCustomers filters by name or phone when query is set.
func (r *DirectoryGormRepository) ListCustomers(
	ctx context.Context,
	companyID uint,
	query string,
) ([]models.Customer, error) {

	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + query + "%"
		q = q.Where("name ILIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *DirectoryGormRepository) ListProfessionals(
	ctx context.Context,
	companyID uint,
) ([]models.Professional, error) {

	var pros []models.Professional
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = ?", companyID, true).
		Order("name ASC").
		Find(&pros).Error; err != nil {
		return nil, err
	}
	return pros, nil
}
