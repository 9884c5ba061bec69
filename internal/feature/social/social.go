package social

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"artist-market/internal/domain"
	"artist-market/internal/transport/http/ez"
	mdw "artist-market/internal/transport/http/middleware"
	"artist-market/pkg/validate"
)

type Module struct{ db *gorm.DB }

func New(db *gorm.DB) *Module { return &Module{db: db} }

func (m *Module) Mount(_, api *gin.RouterGroup) {
	ez.Register(api, m.db, ez.Action[struct{}]{
		Method: http.MethodPost,
		Path:   "/favorites/:postId",
		Binder: ez.BindNone,
		Status: http.StatusCreated,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			postID, err := postIDParam(c)
			if err != nil {
				return nil, err
			}
			var n int64
			if err := tx.Model(&domain.Post{}).Where("id = ?", postID).Count(&n).Error; err != nil {
				return nil, ez.Internal("Favorite failed", err)
			}
			if n == 0 {
				return nil, ez.NotFound("Post not found")
			}
			if err := tx.Model(&domain.Favorite{}).
				Where("user_id = ? AND post_id = ?", mdw.UserID(c), postID).
				Count(&n).Error; err != nil {
				return nil, ez.Internal("Favorite failed", err)
			}
			if n > 0 {
				return nil, ez.Conflict("Already favorited")
			}
			fav := domain.Favorite{UserID: mdw.UserID(c), PostID: postID}
			if err := tx.Create(&fav).Error; err != nil {
				// 并发双写：输家撞唯一索引，按冲突返回而不是 500
				if ez.DupKey(err) {
					return nil, ez.Conflict("Already favorited")
				}
				return nil, ez.Internal("Favorite failed", err)
			}
			return gin.H{}, nil
		},
	})

	ez.Register(api, m.db, ez.Action[struct{}]{
		Method: http.MethodDelete,
		Path:   "/favorites/:postId",
		Binder: ez.BindNone,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			postID, err := postIDParam(c)
			if err != nil {
				return nil, err
			}
			res := tx.Where("user_id = ? AND post_id = ?", mdw.UserID(c), postID).
				Delete(&domain.Favorite{})
			if res.Error != nil {
				return nil, ez.Internal("Unfavorite failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, ez.NotFound("Favorite not found")
			}
			return gin.H{}, nil
		},
	})

	ez.Register(api, m.db, ez.Action[struct{}]{
		Method: http.MethodGet,
		Path:   "/favorites",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			posts := []domain.Post{}
			err := tx.Model(&domain.Post{}).
				Joins("JOIN favorites ON favorites.post_id = posts.id").
				Where("favorites.user_id = ?", mdw.UserID(c)).
				Order("favorites.created_at DESC").
				Find(&posts).Error
			if err != nil {
				return nil, ez.Internal("Error loading favorites", err)
			}
			return gin.H{"posts": posts}, nil
		},
	})

	type reviewIn struct {
		Rating  *float64 `json:"rating"`
		Comment string   `json:"comment"`
	}
	ez.Register(api, m.db, ez.Action[reviewIn]{
		Method: http.MethodPost,
		Path:   "/reviews/:postId",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *reviewIn) (gin.H, error) {
			postID, err := postIDParam(c)
			if err != nil {
				return nil, err
			}
			// 只收整数 1~5；3.5 这种不取整放过
			if in.Rating == nil || *in.Rating != math.Trunc(*in.Rating) ||
				!validate.Rating(int(*in.Rating)) {
				return nil, ez.BadRequest("Rating must be 1-5")
			}
			rv := domain.Review{
				Rating:  int(*in.Rating),
				Comment: validate.Truncate(in.Comment, 500),
				UserID:  mdw.UserID(c),
				PostID:  postID,
			}
			if err := tx.Create(&rv).Error; err != nil {
				return nil, ez.Internal("Review failed", err)
			}
			return gin.H{}, nil
		},
	})
}

func postIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		return 0, ez.NotFound("Post not found")
	}
	return uint(id), nil
}
