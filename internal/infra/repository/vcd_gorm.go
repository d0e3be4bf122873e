package repository

import (
	"context"
	"errors"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	repo "github.com/prapti31kour/CineCart/internal/repository"

	"gorm.io/gorm"
)

type VcdGormRepository struct {
	db *gorm.DB
}

// DI
func NewVcdGormRepository(db *gorm.DB) *VcdGormRepository {
	return &VcdGormRepository{db: db}
}

// 全作品を取得
func (r *VcdGormRepository) ListAll(ctx context.Context) ([]model.Vcd, error) {
	var vcds []model.Vcd

	if err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&vcds).Error; err != nil {
		return []model.Vcd{}, err
	}
	return vcds, nil
}

// vcdIDで1件取得
func (r *VcdGormRepository) FindByVcdID(ctx context.Context, vcdID string) (model.Vcd, error) {
	var vcd model.Vcd

	err := r.db.WithContext(ctx).
		Where("vcd_id = ?", vcdID).
		First(&vcd).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Vcd{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Vcd{}, err
	}
	return vcd, nil
}

// vcdIDのリストでまとめて取得
func (r *VcdGormRepository) FindByVcdIDs(ctx context.Context, vcdIDs []string) ([]model.Vcd, error) {
	if len(vcdIDs) == 0 {
		return []model.Vcd{}, nil
	}

	var vcds []model.Vcd
	if err := r.db.WithContext(ctx).
		Where("vcd_id IN ?", vcdIDs).
		Order("id asc").
		Find(&vcds).Error; err != nil {
		return []model.Vcd{}, err
	}
	return vcds, nil
}

// 新規作成
func (r *VcdGormRepository) Create(ctx context.Context, v model.Vcd) (model.Vcd, error) {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return model.Vcd{}, err
	}
	return v, nil
}

// 名前で部分更新。重複名はid昇順の先頭1件だけ触る。
func (r *VcdGormRepository) UpdateByName(ctx context.Context, name string, patch repo.VcdPatch) (model.Vcd, error) {
	var updated model.Vcd

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vcd model.Vcd

		findErr := tx.
			Where("vcd_name = ?", name).
			Order("id asc").
			First(&vcd).Error

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if findErr != nil {
			return findErr
		}

		updates := patchToUpdates(patch)
		if len(updates) > 0 {
			if err := tx.Model(&model.Vcd{}).
				Where("id = ?", vcd.ID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		//更新後の姿を返す
		return tx.Where("id = ?", vcd.ID).First(&updated).Error
	})

	if err != nil {
		return model.Vcd{}, err
	}
	return updated, nil
}

// 名前で削除。重複名は先頭1件だけ消す。
func (r *VcdGormRepository) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vcd model.Vcd

		findErr := tx.
			Where("vcd_name = ?", name).
			Order("id asc").
			First(&vcd).Error

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if findErr != nil {
			return findErr
		}

		return tx.Delete(&model.Vcd{}, vcd.ID).Error
	})
}

// 在庫が足りるときだけ減らす（条件付きUPDATEなので負数にはならない）
func (r *VcdGormRepository) DecreaseStockIfEnough(ctx context.Context, vcdID string, name string, qty int64) (model.Vcd, bool, error) {
	var updated model.Vcd
	ok := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&model.Vcd{})
		if vcdID != "" {
			q = q.Where("vcd_id = ?", vcdID)
		} else {
			q = q.Where("vcd_name = ?", name)
		}

		res := q.Where("quantity >= ?", qty).
			Update("quantity", gorm.Expr("quantity - ?", qty))

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		ok = true

		//減算後の姿を返す
		find := tx.Model(&model.Vcd{})
		if vcdID != "" {
			find = find.Where("vcd_id = ?", vcdID)
		} else {
			find = find.Where("vcd_name = ?", name)
		}
		return find.First(&updated).Error
	})

	if err != nil {
		return model.Vcd{}, false, err
	}
	return updated, ok, nil
}

// nilでないフィールドだけupdates mapに詰める
func patchToUpdates(p repo.VcdPatch) map[string]interface{} {
	updates := map[string]interface{}{}

	if p.Name != nil {
		updates["vcd_name"] = *p.Name
	}
	if p.Images != nil {
		updates["images"] = *p.Images
	}
	if p.Summary != nil {
		updates["summary"] = *p.Summary
	}
	if p.Year != nil {
		updates["year"] = *p.Year
	}
	if p.CastLeads != nil {
		updates["cast_leads"] = *p.CastLeads
	}
	if p.CastFeatured != nil {
		updates["cast_featured"] = *p.CastFeatured
	}
	if p.Genre != nil {
		updates["genre"] = *p.Genre
	}
	if p.GenreTags != nil {
		updates["genre_tags"] = *p.GenreTags
	}
	if p.Language != nil {
		updates["language"] = *p.Language
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Rating != nil {
		updates["rating"] = *p.Rating
	}
	if p.Director != nil {
		updates["director"] = *p.Director
	}
	if p.RuntimeMin != nil {
		updates["runtime_minutes"] = *p.RuntimeMin
	}
	if p.Quantity != nil {
		updates["quantity"] = *p.Quantity
	}
	if p.Cost != nil {
		updates["cost"] = *p.Cost
	}

	return updates
}
