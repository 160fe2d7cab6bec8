package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// NewDB opens the pool and migrates the schema.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Company{},
		&models.Professional{},
		&models.Customer{},
		&models.Service{},
		&models.Product{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.AppointmentProduct{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// exclusion constraint enforcing one live booking per professional and instant
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$ BEGIN
			ALTER TABLE appointments ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (
				professional_id WITH =,
				tstzrange(start_time, end_time, '[)') WITH &&
			) WHERE (status <> 'cancelled');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		`UPDATE companies SET timezone = 'America/Sao_Paulo' WHERE timezone IS NULL OR timezone = ''`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
