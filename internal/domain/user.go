package domain

import "time"

// User 市场用户；is_artist 为 true 才能发布约稿
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string `gorm:"size:200;not null" json:"-"`
	Bio          string `gorm:"size:500" json:"bio"`
	AvatarURL    string `gorm:"size:500" json:"avatar_url"`
	IsArtist     bool   `gorm:"not null;default:false" json:"is_artist"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }
