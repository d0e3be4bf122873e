package model

// 注文明細。カタログからのコピー（参照ではない）なので、
// 後からカタログを編集・削除しても過去の注文は変わらない。
type OrderItem struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID  int64   `gorm:"not null;index" json:"-"`
	VcdID    string  `gorm:"type:varchar(100);not null" json:"vcdID"`
	Title    string  `gorm:"type:varchar(255)" json:"title"`
	Price    float64 `gorm:"not null" json:"price"`
	Quantity int64   `gorm:"not null" json:"quantity"`
}
