package domain

import "time"

// Commission 约稿项目，仅画师可创建，price 必填
type Commission struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"size:1000" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ArtistID    uint    `gorm:"index;not null" json:"artist_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Commission) TableName() string { return "commissions" }
