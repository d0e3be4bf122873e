package repository

import (
	"context"
	"errors"

	"github.com/prapti31kour/CineCart/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// PATCH /vcds/by-name の部分更新。nilのフィールドは触らない。
type VcdPatch struct {
	Name         *string
	Images       *[]string
	Summary      *string
	Year         *int
	CastLeads    *[]string
	CastFeatured *[]string
	Genre        *string
	GenreTags    *[]string
	Language     *string
	Category     *string
	Rating       *float64
	Director     *string
	RuntimeMin   *int
	Quantity     *int64
	Cost         *float64
}

// カタログの永続化（保存・取得）だけを約束。
type VcdRepository interface {
	ListAll(ctx context.Context) ([]model.Vcd, error)
	FindByVcdID(ctx context.Context, vcdID string) (model.Vcd, error)
	FindByVcdIDs(ctx context.Context, vcdIDs []string) ([]model.Vcd, error)

	Create(ctx context.Context, v model.Vcd) (model.Vcd, error)
	//名前で部分更新（重複名はid昇順の先頭1件）
	UpdateByName(ctx context.Context, name string, patch VcdPatch) (model.Vcd, error)
	//名前で削除（重複名は先頭1件）
	DeleteByName(ctx context.Context, name string) error

	// 在庫が足りるときだけ減算（vcdIDかnameのどちらかで指定）
	DecreaseStockIfEnough(ctx context.Context, vcdID string, name string, qty int64) (model.Vcd, bool, error)
}
