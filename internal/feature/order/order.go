package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"artist-market/internal/domain"
	"artist-market/internal/transport/http/ez"
	mdw "artist-market/internal/transport/http/middleware"
)

type Module struct{ db *gorm.DB }

func New(db *gorm.DB) *Module { return &Module{db: db} }

func (m *Module) Mount(_, api *gin.RouterGroup) {
	ez.Register(api, m.db, ez.Action[struct{}]{
		Method: http.MethodPost,
		Path:   "/orders/:postId",
		Binder: ez.BindNone,
		Status: http.StatusCreated,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
			if err != nil {
				return nil, ez.NotFound("Post not found")
			}
			var post domain.Post
			err = tx.First(&post, "id = ?", postID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ez.NotFound("Post not found")
			}
			if err != nil {
				return nil, ez.Internal("Order failed", err)
			}
			if !post.IsForSale {
				return nil, ez.BadRequest("Post not for sale")
			}
			if post.UserID == mdw.UserID(c) {
				return nil, ez.BadRequest("Cannot buy own post")
			}
			// 在售但没标价：给明确的 400，而不是让 NOT NULL 约束炸成 500
			if post.Price == nil {
				return nil, ez.BadRequest("Post has no price")
			}
			o := domain.Order{
				BuyerID: mdw.UserID(c),
				PostID:  post.ID,
				Price:   *post.Price, // 快照，之后改价不影响已成订单
				Status:  domain.OrderStatusPending,
			}
			if err := tx.Create(&o).Error; err != nil {
				return nil, ez.Internal("Order failed", err)
			}
			return gin.H{"order_id": o.ID}, nil
		},
	})

	ez.Register(api, m.db, ez.Action[struct{}]{
		Method: http.MethodGet,
		Path:   "/orders",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			orders := []domain.Order{}
			err := tx.Where("buyer_id = ?", mdw.UserID(c)).
				Order("created_at DESC").
				Find(&orders).Error
			if err != nil {
				return nil, ez.Internal("Error loading orders", err)
			}
			return gin.H{"orders": orders}, nil
		},
	})
}
