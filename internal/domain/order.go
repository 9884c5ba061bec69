package domain

import "time"

const OrderStatusPending = "pending"

// Order 购买记录；price 为下单时刻的快照，之后帖子改价不影响
type Order struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	BuyerID uint    `gorm:"index;not null" json:"buyer_id"`
	PostID  uint    `gorm:"index;not null" json:"post_id"`
	Price   float64 `gorm:"not null" json:"price"`
	Status  string  `gorm:"size:20;not null;default:pending" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Order) TableName() string { return "orders" }
