package repository

import (
	"context"

	"shoptrack/internal/model"

	"gorm.io/gorm"
)

// AuditRepository persists and lists audit trail entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return withRetry(ctx, func() error {
		return translate(GetDB(ctx, r.db).Create(entry).Error)
	})
}

func (r *auditRepository) List(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	// Fresh query per finisher; reusing the chain after Count leaks its
	// clauses into the Find.
	query := func() *gorm.DB {
		db := GetDB(ctx, r.db).Model(&model.AuditLog{})
		if action != "" {
			db = db.Where("action = ?", action)
		}
		return db
	}

	var total int64
	err := withRetry(ctx, func() error {
		return translate(query().Count(&total).Error)
	})
	if err != nil {
		return nil, 0, err
	}

	var entries []model.AuditLog
	offset := (page - 1) * limit
	err = withRetry(ctx, func() error {
		return translate(query().
			Preload("User").
			Order("created_at DESC").
			Offset(offset).Limit(limit).
			Find(&entries).Error)
	})
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
