package repository

import (
	"context"

	"github.com/prapti31kour/CineCart/internal/domain/model"
)

type CartRepository interface {
	//ユーザーのカート明細を一覧取得
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)

	// 同一作品は数量加算、無ければ新規行
	AddQuantity(ctx context.Context, userID int64, vcdID string, qty int64) error

	// 数量を上書き。行が無ければ何もしない（false）
	SetQuantity(ctx context.Context, userID int64, vcdID string, qty int64) (bool, error)

	// 明細削除（無くても成功）
	Remove(ctx context.Context, userID int64, vcdID string) error

	// 全明細削除
	Clear(ctx context.Context, userID int64) error
}
