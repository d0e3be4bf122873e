package model

import "time"

// カートの明細。
// 1ユーザー×1作品につき1行（同一作品の追加は数量加算）。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_vcd" json:"-"`
	VcdID     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_cart_user_vcd" json:"vcdID"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}
