package model

import "time"

// カタログのカテゴリ
const (
	CategoryHollywood = "Hollywood"
	CategoryBollywood = "Bollywood"
	CategoryRegional  = "Regional"
)

// カタログ作品。
// vcd_idが業務キーで、vcd_nameは重複しうる（名前指定の操作は先頭1件）。
type Vcd struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	VcdID        string    `gorm:"column:vcd_id;type:varchar(100);not null;uniqueIndex" json:"vcdID"`
	Name         string    `gorm:"column:vcd_name;type:varchar(255);not null;index" json:"vcdName"`
	Images       []string  `gorm:"serializer:json" json:"vcdImage"`
	Summary      string    `gorm:"type:text" json:"summary"`
	Year         int       `json:"year"`
	CastLeads    []string  `gorm:"serializer:json" json:"castLeads"`
	CastFeatured []string  `gorm:"serializer:json" json:"castFeatured"`
	Genre        string    `gorm:"type:varchar(100)" json:"genre"`
	GenreTags    []string  `gorm:"serializer:json" json:"genreTags"`
	Language     string    `gorm:"type:varchar(50)" json:"language"`
	Category     string    `gorm:"type:varchar(50)" json:"category"`
	Rating       float64   `json:"rating"`
	Director     string    `gorm:"type:varchar(255)" json:"director"`
	RuntimeMin   int       `gorm:"column:runtime_minutes" json:"runtimeMinutes"`
	Quantity     int64     `gorm:"not null;default:0" json:"quantity"`
	Cost         float64   `gorm:"not null;default:0" json:"cost"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
