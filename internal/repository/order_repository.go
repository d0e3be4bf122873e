package repository

import (
	"context"

	"github.com/prapti31kour/CineCart/internal/domain/model"
)

type OrderRepository interface {
	//注文＋明細を保存（明細は関連としてまとめて入る）
	Create(ctx context.Context, order model.Order) (model.Order, error)

	//emailの注文をplaced_at降順で返す
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
}
