package model

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// 管理者によるカタログ変更の記録
type AuditLog struct {
	ID         int64       `gorm:"primaryKey;autoIncrement"`
	ActorEmail string      `gorm:"not null;index"`
	Action     AuditAction `gorm:"type:varchar(20);not null"`
	Resource   string      `gorm:"type:varchar(50);not null"`
	ResourceID string      `gorm:"type:varchar(255)"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime"`
}
