package database

import (
	"errors"

	"gorm.io/gorm"

	"artist-market/internal/domain"
	"artist-market/pkg/utils"
)

func ptr(f float64) *float64 { return &f }

// Seed 写入演示画师和示例作品，可重复执行
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var artist domain.User
		err := tx.Where("username = ?", "demo_artist").First(&artist).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			artist = domain.User{
				Username:     "demo_artist",
				Email:        "demo@example.com",
				PasswordHash: utils.HashPassword("password123"),
				Bio:          "Demo artist showcasing the marketplace",
				IsArtist:     true,
			}
			if err := tx.Create(&artist).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&domain.Post{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		samples := []domain.Post{
			{
				Title:       "Abstract Watercolor Series",
				Description: "Beautiful abstract watercolor painting with flowing colors and organic shapes.",
				ImageURL:    "https://images.unsplash.com/photo-1561214115-6d2f1b0609fa?w=400&h=300&fit=crop",
				Price:       ptr(150.00),
				IsForSale:   true,
				UserID:      artist.ID,
			},
			{
				Title:       "Digital Portrait Commission",
				Description: "Custom digital portrait of your favorite characters or people.",
				ImageURL:    "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=400&h=300&fit=crop",
				Price:       ptr(75.00),
				IsForSale:   true,
				UserID:      artist.ID,
			},
			{
				Title:       "Landscape Oil Painting",
				Description: "Serene mountain landscape captured in oils. Available for commissioning.",
				ImageURL:    "https://images.unsplash.com/photo-1561214115-6d2f1b0609fa?w=400&h=300&fit=crop",
				Price:       ptr(250.00),
				IsForSale:   true,
				UserID:      artist.ID,
			},
			{
				Title:       "Graphic Design Portfolio",
				Description: "Collection of modern graphic design work - logos, branding, and layouts.",
				ImageURL:    "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=400&h=300&fit=crop",
				IsForSale:   false,
				UserID:      artist.ID,
			},
			{
				Title:       "Character Illustration",
				Description: "Original character design with detailed costume and expression.",
				ImageURL:    "https://images.unsplash.com/photo-1561214115-6d2f1b0609fa?w=400&h=300&fit=crop",
				Price:       ptr(120.00),
				IsForSale:   true,
				UserID:      artist.ID,
			},
		}
		return tx.Create(&samples).Error
	})
}
