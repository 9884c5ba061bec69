package domain

import "time"

// Favorite 收藏；(user_id, post_id) 唯一，并发重复插入靠唯一索引兜底
type Favorite struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex:uniq_user_post;not null" json:"user_id"`
	PostID uint `gorm:"uniqueIndex:uniq_user_post;not null" json:"post_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string { return "favorites" }
