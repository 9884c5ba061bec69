package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"artist-market/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一业务错误：Code 即 HTTP 状态码，Msg 是可以对外的文案。
// Err 只进日志，永远不进响应体。
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return response.Text(e.Code)
}
func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }

// Conflict 唯一约束冲突；对外和普通 400 一个待遇
func Conflict(msg string) error { return &AErr{Code: http.StatusBadRequest, Msg: msg} }

func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Action I 为入参类型；出参统一 gin.H，渲染时合并 success 标记
type Action[I any] struct {
	Method string
	Path   string
	Binder Binder
	Status int  // 成功状态码，0 则 200
	UseTx  bool // 整个 handler 包进一个事务，失败整体回滚
	Handler func(c *gin.Context, tx *gorm.DB, in *I) (gin.H, error)
}

func Register[I any](g *gin.RouterGroup, db *gorm.DB, a Action[I]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, response.Err(bindErr.Error()))
			return
		}

		run := func(tx *gorm.DB) (gin.H, error) { return a.Handler(c, tx, &in) }
		var out gin.H
		var err error
		if a.UseTx {
			err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
				o, e := run(tx)
				out = o
				return e
			})
		} else {
			out, err = run(db.WithContext(c.Request.Context()))
		}

		if err != nil {
			render(c, err)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, response.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default:
		g.POST(a.Path, h)
	}
}

// Render 不走 Action 的裸 handler（页面类 GET）也用同一套错误映射
func Render(c *gin.Context, err error) { render(c, err) }

// RenderOK 同上，成功侧
func RenderOK(c *gin.Context, status int, data gin.H) {
	c.JSON(status, response.OK(data))
}

func render(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Err != nil {
			_ = c.Error(ae.Err)
		}
		c.JSON(ae.Code, response.Err(ae.Error()))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, response.Err(response.Text(http.StatusInternalServerError)))
}

// DupKey 唯一索引冲突；不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func DupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
