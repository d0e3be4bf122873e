package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 注文。チェックアウト時点のスナップショットで、totalは作成後に再計算しない。
type Order struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID       string      `gorm:"type:varchar(64);not null;uniqueIndex" json:"orderId"`
	UserID        int64       `gorm:"not null;index" json:"-"`
	Email         string      `gorm:"not null;index" json:"email"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items"`
	Total         float64     `gorm:"not null" json:"total"`
	PaymentMethod string      `gorm:"type:varchar(50);not null;default:'card'" json:"paymentMethod"`
	Address       string      `gorm:"type:text" json:"address"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'placed';index" json:"status"`
	PlacedAt      time.Time   `gorm:"not null;index" json:"placedAt"`
	CreatedAt     time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
