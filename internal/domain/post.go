package domain

import "time"

// Post 作品帖；price 可空（非卖品或未定价）
type Post struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Title       string   `gorm:"size:200;not null" json:"title"`
	Description string   `gorm:"size:1000" json:"description"`
	ImageURL    string   `gorm:"size:500;not null" json:"image_url"`
	Price       *float64 `json:"price"`
	IsForSale   bool     `gorm:"not null;default:false" json:"is_for_sale"`
	UserID      uint     `gorm:"index;not null" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Post) TableName() string { return "posts" }
