package domain

import "time"

type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	PostID  uint   `gorm:"index;not null" json:"post_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
