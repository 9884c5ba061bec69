package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"artist-market/internal/core/cache"
	"artist-market/internal/core/sessions"
	"artist-market/internal/feature/catalog"
	"artist-market/internal/feature/commission"
	"artist-market/internal/feature/identity"
	"artist-market/internal/feature/order"
	"artist-market/internal/feature/social"
	mdw "artist-market/internal/transport/http/middleware"
)

// NewAPIEngine cch 可为 nil（无 redis 时首页不走缓存）
func NewAPIEngine(l *zap.Logger, db *gorm.DB, store sessions.Store, cch *cache.Cache, cookie sessions.CookieOpts) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
		mdw.Session(store, cookie.Name),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 公开路由挂根，鉴权路由统一挂 /api
	public := r.Group("")
	api := r.Group("/api")
	api.Use(mdw.RequireLogin())

	reg := NewRegistry()
	reg.Add(
		identity.New(db, store, cookie),
		catalog.New(db, cch),
		commission.New(db),
		social.New(db),
		order.New(db),
	)
	reg.MountAll(public, api)

	return r
}
