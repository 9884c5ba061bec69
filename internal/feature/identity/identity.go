package identity

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"artist-market/internal/core/sessions"
	"artist-market/internal/domain"
	"artist-market/internal/transport/http/ez"
	mdw "artist-market/internal/transport/http/middleware"
	"artist-market/pkg/utils"
	"artist-market/pkg/validate"
)

type Module struct {
	db     *gorm.DB
	store  sessions.Store
	cookie sessions.CookieOpts
}

func New(db *gorm.DB, store sessions.Store, cookie sessions.CookieOpts) *Module {
	return &Module{db: db, store: store, cookie: cookie}
}

// Priority 身份模块先挂，根路径留给 catalog
func (m *Module) Priority() int { return 10 }

func (m *Module) Mount(public, api *gin.RouterGroup) {
	type registerIn struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	ez.Register(public, m.db, ez.Action[registerIn]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *registerIn) (gin.H, error) {
			if in.Username == "" || in.Email == "" || in.Password == "" {
				return nil, ez.BadRequest("Missing required fields")
			}
			if n := len([]rune(in.Username)); n < 3 || n > 80 {
				return nil, ez.BadRequest("Username must be 3-80 characters")
			}
			if !validate.Email(in.Email) {
				return nil, ez.BadRequest("Invalid email format")
			}
			if len(in.Password) < 6 {
				return nil, ez.BadRequest("Password must be at least 6 characters")
			}
			var n int64
			if err := tx.Model(&domain.User{}).Where("username = ?", in.Username).Count(&n).Error; err != nil {
				return nil, ez.Internal("Registration failed", err)
			}
			if n > 0 {
				return nil, ez.Conflict("Username already exists")
			}
			if err := tx.Model(&domain.User{}).Where("email = ?", in.Email).Count(&n).Error; err != nil {
				return nil, ez.Internal("Registration failed", err)
			}
			if n > 0 {
				return nil, ez.Conflict("Email already registered")
			}
			u := domain.User{
				Username:     in.Username,
				Email:        in.Email,
				PasswordHash: utils.HashPassword(in.Password),
			}
			if err := tx.Create(&u).Error; err != nil {
				// 并发注册撞唯一索引：输家按冲突处理
				if ez.DupKey(err) {
					return nil, ez.Conflict("Username already exists")
				}
				return nil, ez.Internal("Registration failed", err)
			}
			if err := m.establish(c, u.ID); err != nil {
				return nil, ez.Internal("Registration failed", err)
			}
			return gin.H{"message": "Registration successful"}, nil
		},
	})

	type loginIn struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	ez.Register(public, m.db, ez.Action[loginIn]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *loginIn) (gin.H, error) {
			if in.Username == "" || in.Password == "" {
				return nil, ez.BadRequest("Missing username or password")
			}
			var u domain.User
			err := tx.Where("username = ?", in.Username).First(&u).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ez.Unauthorized("Invalid credentials")
			}
			if err != nil {
				return nil, ez.Internal("Login failed", err)
			}
			if !utils.CheckPassword(in.Password, u.PasswordHash) {
				return nil, ez.Unauthorized("Invalid credentials")
			}
			if err := m.establish(c, u.ID); err != nil {
				return nil, ez.Internal("Login failed", err)
			}
			return gin.H{"message": "Login successful"}, nil
		},
	})

	// 登出无条件成功：删 token、清 cookie、回首页
	public.GET("/logout", func(c *gin.Context) {
		if tok, err := c.Cookie(m.cookie.Name); err == nil && tok != "" {
			_ = m.store.Delete(c.Request.Context(), tok)
		}
		c.SetCookie(m.cookie.Name, "", -1, "/", "", m.cookie.Secure, true)
		c.Redirect(http.StatusFound, "/")
	})

	type editIn struct {
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
		IsArtist  *bool   `json:"is_artist"`
	}
	ez.Register(api, m.db, ez.Action[editIn]{
		Method: http.MethodPost,
		Path:   "/profile/edit",
		Binder: ez.BindJSON,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *editIn) (gin.H, error) {
			// 只能改自己的资料，目标用户不由请求指定
			updates := map[string]any{}
			if in.Bio != nil {
				updates["bio"] = validate.Truncate(*in.Bio, 500)
			}
			if in.AvatarURL != nil {
				updates["avatar_url"] = validate.Truncate(*in.AvatarURL, 500)
			}
			if in.IsArtist != nil {
				updates["is_artist"] = *in.IsArtist
			}
			if len(updates) > 0 {
				res := tx.Model(&domain.User{}).Where("id = ?", mdw.UserID(c)).Updates(updates)
				if res.Error != nil {
					return nil, ez.Internal("Profile update failed", res.Error)
				}
			}
			return gin.H{"message": "Profile updated"}, nil
		},
	})

	ez.Register(api, m.db, ez.Action[struct{}]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			var u domain.User
			if err := tx.First(&u, "id = ?", mdw.UserID(c)).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ez.NotFound("User not found")
				}
				return nil, ez.Internal("Lookup failed", err)
			}
			return gin.H{"user": u}, nil
		},
	})

}

// establish 新建 session 并种 cookie；注册/登录都整体替换旧状态
func (m *Module) establish(c *gin.Context, userID uint) error {
	tok, err := m.store.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	c.SetCookie(m.cookie.Name, tok, int(m.cookie.TTL.Seconds()), "/", "", m.cookie.Secure, true)
	return nil
}
