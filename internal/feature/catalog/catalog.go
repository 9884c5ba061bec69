package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"artist-market/internal/core/cache"
	"artist-market/internal/domain"
	"artist-market/internal/transport/http/ez"
	mdw "artist-market/internal/transport/http/middleware"
	"artist-market/pkg/validate"
)

const (
	perPageHome    = 12
	perPageSearch  = 12
	perPageProfile = 10
	homeCacheKey   = "home:recent:p1"
	homeCacheTTL   = 30 * time.Second
)

type Module struct {
	db  *gorm.DB
	cch *cache.Cache // 可为 nil（测试/无 redis 环境）
}

func New(db *gorm.DB, cch *cache.Cache) *Module { return &Module{db: db, cch: cch} }

type postPage struct {
	Posts []domain.Post `json:"posts"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
	Total int64         `json:"total"`
}

func (m *Module) Mount(public, api *gin.RouterGroup) {
	public.GET("/", m.homepage)
	public.GET("/search", m.search)
	public.GET("/profile/:username", m.profile)

	type postIn struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ImageURL    string   `json:"image_url"`
		Price       *float64 `json:"price"`
		IsForSale   bool     `json:"is_for_sale"`
	}
	ez.Register(api, m.db, ez.Action[postIn]{
		Method: http.MethodPost,
		Path:   "/posts",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *postIn) (gin.H, error) {
			if in.Title == "" || in.ImageURL == "" {
				return nil, ez.BadRequest("Title and image required")
			}
			if len([]rune(in.Title)) > 200 {
				return nil, ez.BadRequest("Title too long")
			}
			if in.Price != nil && !validate.Price(*in.Price) {
				return nil, ez.BadRequest("Invalid price")
			}
			p := domain.Post{
				Title:       in.Title,
				Description: validate.Truncate(in.Description, 1000),
				ImageURL:    validate.Truncate(in.ImageURL, 500),
				Price:       in.Price,
				IsForSale:   in.IsForSale,
				UserID:      mdw.UserID(c),
			}
			if err := tx.Create(&p).Error; err != nil {
				return nil, ez.Internal("Post creation failed", err)
			}
			m.invalidateHome(c)
			return gin.H{"post_id": p.ID}, nil
		},
	})

	type patchIn struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		ImageURL    *string  `json:"image_url"`
		Price       *float64 `json:"price"`
		IsForSale   *bool    `json:"is_for_sale"`
	}
	ez.Register(api, m.db, ez.Action[patchIn]{
		Method: http.MethodPut,
		Path:   "/posts/:id",
		Binder: ez.BindJSON,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *patchIn) (gin.H, error) {
			post, err := m.ownedPost(c, tx)
			if err != nil {
				return nil, err
			}
			// 校验先于任何赋值，保证整单回滚之外也不会半改
			if in.Price != nil && !validate.Price(*in.Price) {
				return nil, ez.BadRequest("Invalid price")
			}
			if in.Title != nil {
				post.Title = validate.Truncate(*in.Title, 200)
			}
			if in.Description != nil {
				post.Description = validate.Truncate(*in.Description, 1000)
			}
			if in.ImageURL != nil {
				post.ImageURL = validate.Truncate(*in.ImageURL, 500)
			}
			if in.Price != nil {
				post.Price = in.Price
			}
			if in.IsForSale != nil {
				post.IsForSale = *in.IsForSale
			}
			if err := tx.Save(post).Error; err != nil {
				return nil, ez.Internal("Post update failed", err)
			}
			m.invalidateHome(c)
			return gin.H{}, nil
		},
	})

	ez.Register(api, m.db, ez.Action[struct{}]{
		Method: http.MethodDelete,
		Path:   "/posts/:id",
		Binder: ez.BindNone,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			post, err := m.ownedPost(c, tx)
			if err != nil {
				return nil, err
			}
			// 级联：评论/收藏/订单随帖子一起删，不留孤儿行
			for _, mdl := range []any{&domain.Review{}, &domain.Favorite{}, &domain.Order{}} {
				if err := tx.Where("post_id = ?", post.ID).Delete(mdl).Error; err != nil {
					return nil, ez.Internal("Post deletion failed", err)
				}
			}
			if err := tx.Delete(post).Error; err != nil {
				return nil, ez.Internal("Post deletion failed", err)
			}
			m.invalidateHome(c)
			return gin.H{"message": "Post deleted"}, nil
		},
	})
}

func (m *Module) homepage(c *gin.Context) {
	page := pageParam(c)
	sort := c.DefaultQuery("sort", "recent")

	load := func() (*postPage, error) {
		q := m.db.WithContext(c.Request.Context()).Model(&domain.Post{})
		order := "created_at DESC"
		switch sort {
		case "price_low":
			q = q.Where("price IS NOT NULL")
			order = "price ASC"
		case "price_high":
			q = q.Where("price IS NOT NULL")
			order = "price DESC"
		default:
			sort = "recent"
		}
		return paginatePosts(q, order, page, perPageHome)
	}

	var pp *postPage
	var err error
	if m.cch != nil && page == 1 && sort == "recent" {
		pp, err = cache.GetOrLoadJSON(m.cch, c.Request.Context(), homeCacheKey, homeCacheTTL,
			func(context.Context) (*postPage, error) { return load() })
	} else {
		pp, err = load()
	}
	if err != nil {
		ez.Render(c, ez.Internal("Error loading posts", err))
		return
	}
	ez.RenderOK(c, http.StatusOK, gin.H{
		"posts": pp.Posts, "page": pp.Page, "pages": pp.Pages, "total": pp.Total, "sort": sort,
	})
}

func (m *Module) search(c *gin.Context) {
	q := validate.Truncate(strings.TrimSpace(c.Query("q")), 100)
	page := pageParam(c)

	// 不足 2 个字符直接回空结果，不碰存储
	if len([]rune(q)) < 2 {
		ez.RenderOK(c, http.StatusOK, gin.H{
			"posts": []domain.Post{}, "users": []gin.H{}, "query": "",
			"page": 1, "pages": 1, "total": int64(0),
		})
		return
	}

	like := "%" + strings.ToLower(q) + "%"
	db := m.db.WithContext(c.Request.Context())

	pp, err := paginatePosts(
		db.Model(&domain.Post{}).
			Where("lower(title) LIKE ? OR lower(description) LIKE ?", like, like),
		"created_at DESC", page, perPageSearch,
	)
	if err != nil {
		ez.Render(c, ez.Internal("Search error", err))
		return
	}

	var users []domain.User
	if err := db.Where("lower(username) LIKE ?", like).Limit(10).Find(&users).Error; err != nil {
		ez.Render(c, ez.Internal("Search error", err))
		return
	}
	names := make([]gin.H, 0, len(users))
	for _, u := range users {
		names = append(names, gin.H{"id": u.ID, "username": u.Username, "is_artist": u.IsArtist})
	}

	ez.RenderOK(c, http.StatusOK, gin.H{
		"posts": pp.Posts, "users": names, "query": q,
		"page": pp.Page, "pages": pp.Pages, "total": pp.Total,
	})
}

func (m *Module) profile(c *gin.Context) {
	db := m.db.WithContext(c.Request.Context())

	var u domain.User
	err := db.Where("username = ?", c.Param("username")).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ez.Render(c, ez.NotFound("User not found"))
		return
	}
	if err != nil {
		ez.Render(c, ez.Internal("Error loading profile", err))
		return
	}

	pp, err := paginatePosts(
		db.Model(&domain.Post{}).Where("user_id = ?", u.ID),
		"created_at DESC", pageParam(c), perPageProfile,
	)
	if err != nil {
		ez.Render(c, ez.Internal("Error loading profile", err))
		return
	}

	commissions := []domain.Commission{}
	if u.IsArtist {
		if err := db.Where("artist_id = ?", u.ID).Find(&commissions).Error; err != nil {
			ez.Render(c, ez.Internal("Error loading profile", err))
			return
		}
	}

	ez.RenderOK(c, http.StatusOK, gin.H{
		"user": u, "posts": pp.Posts, "page": pp.Page, "pages": pp.Pages, "total": pp.Total,
		"commissions": commissions,
	})
}

// ownedPost :id 解析 + 存在性 + 属主校验，三个写接口共用
func (m *Module) ownedPost(c *gin.Context, tx *gorm.DB) (*domain.Post, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return nil, ez.NotFound("Post not found")
	}
	var post domain.Post
	err = tx.First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ez.NotFound("Post not found")
	}
	if err != nil {
		return nil, ez.Internal("Lookup failed", err)
	}
	if post.UserID != mdw.UserID(c) {
		return nil, ez.Forbidden("Unauthorized")
	}
	return &post, nil
}

func (m *Module) invalidateHome(c *gin.Context) {
	if m.cch != nil {
		m.cch.Invalidate(c.Request.Context(), homeCacheKey)
	}
}

// paginatePosts 排序只进查页，count 不带 ORDER BY
func paginatePosts(q *gorm.DB, order string, page, per int) (*postPage, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	var posts []domain.Post
	if err := q.Order(order).Offset((page - 1) * per).Limit(per).Find(&posts).Error; err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	pages := int((total + int64(per) - 1) / int64(per))
	if pages == 0 {
		pages = 1
	}
	return &postPage{Posts: posts, Page: page, Pages: pages, Total: total}, nil
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}
