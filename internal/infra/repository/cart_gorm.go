package repository

import (
	"context"
	"errors"
	"time"

	"github.com/prapti31kour/CineCart/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 同一作品は数量加算、無ければ新規行
func (r *CartGormRepository) AddQuantity(ctx context.Context, userID int64, vcdID string, qty int64) error {
	if qty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND vcd_id = ?", userID, vcdID).
			First(&item).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity + ?", qty))

			return res.Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		newItem := model.CartItem{
			UserID:    userID,
			VcdID:     vcdID,
			Quantity:  qty,
			CreatedAt: now,
			UpdatedAt: now,
		}

		return tx.Create(&newItem).Error
	})
}

// 数量を上書き。行が無ければfalse（エラーにしない）
func (r *CartGormRepository) SetQuantity(ctx context.Context, userID int64, vcdID string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND vcd_id = ?", userID, vcdID).
		Update("quantity", qty)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// 明細を削除（無くても成功）
func (r *CartGormRepository) Remove(ctx context.Context, userID int64, vcdID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND vcd_id = ?", userID, vcdID).
		Delete(&model.CartItem{}).Error
}

// 全明細削除
func (r *CartGormRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
