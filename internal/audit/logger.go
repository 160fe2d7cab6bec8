package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		CompanyID: ev.CompanyID,
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		RequestID: ev.RequestID,
		Metadata:  metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Query filters the audit trail of one company. Zero values are ignored.
type Query struct {
	CompanyID uint
	Action    string
	Entity    string
	EntityID  uint
	From      *time.Time
	To        *time.Time
	Page      int
	Limit     int
}

type Page struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

func (q *Query) normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
}

func (l *Logger) List(ctx context.Context, q Query) (*Page, error) {
	q.normalize()

	db := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("company_id = ?", q.CompanyID)

	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if q.EntityID != 0 {
		db = db.Where("entity_id = ?", q.EntityID)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []models.AuditLog
	if err := db.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return &Page{Page: q.Page, Limit: q.Limit, Total: total, Logs: logs}, nil
}
