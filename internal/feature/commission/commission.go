package commission

import (
	"errors"
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
	type createIn struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
	}
	ez.Register(api, m.db, ez.Action[createIn]{
		Method: http.MethodPost,
		Path:   "/commissions",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *createIn) (gin.H, error) {
			var u domain.User
			if err := tx.First(&u, "id = ?", mdw.UserID(c)).Error; err != nil {
				return nil, ez.Internal("Commission creation failed", err)
			}
			if !u.IsArtist {
				return nil, ez.Forbidden("Only artists can create commissions")
			}
			if in.Title == "" || in.Price == nil || !validate.Price(*in.Price) {
				return nil, ez.BadRequest("Title and valid price required")
			}
			cm := domain.Commission{
				Title:       validate.Truncate(in.Title, 200),
				Description: validate.Truncate(in.Description, 1000),
				Price:       *in.Price,
				ArtistID:    u.ID,
			}
			if err := tx.Create(&cm).Error; err != nil {
				return nil, ez.Internal("Commission creation failed", err)
			}
			return gin.H{"commission_id": cm.ID}, nil
		},
	})

	ez.Register(api, m.db, ez.Action[struct{}]{
		Method: http.MethodDelete,
		Path:   "/commissions/:id",
		Binder: ez.BindNone,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return nil, ez.NotFound("Commission not found")
			}
			var cm domain.Commission
			err = tx.First(&cm, "id = ?", id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ez.NotFound("Commission not found")
			}
			if err != nil {
				return nil, ez.Internal("Lookup failed", err)
			}
			if cm.ArtistID != mdw.UserID(c) {
				return nil, ez.Forbidden("Unauthorized")
			}
			if err := tx.Delete(&cm).Error; err != nil {
				return nil, ez.Internal("Commission deletion failed", err)
			}
			return gin.H{"message": "Commission deleted"}, nil
		},
	})
}
