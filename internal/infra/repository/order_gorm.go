package repository

import (
	"context"

	"github.com/prapti31kour/CineCart/internal/domain/model"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 注文＋明細を保存。明細は関連としてまとめてINSERTされる。
func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// emailの注文をplaced_at降順で返す（明細つき）
func (r *OrderGormRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	var orders []model.Order

	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("email = ?", email).
		Order("placed_at desc").
		Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}
