package repository

import (
	"context"

	"github.com/prapti31kour/CineCart/internal/domain/model"

	"gorm.io/gorm"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

// DI
func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// 監査ログを1件保存
func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}
