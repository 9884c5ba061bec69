package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound token 不存在或已过期
var ErrNotFound = errors.New("session not found")

// Store 服务端不透明 session：token → 用户 ID。
// 登出必须立即失效，所以状态放服务端而不是签进 token。
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, token string) (uint, error)
	Delete(ctx context.Context, token string) error
}

func newToken() string { return uuid.NewString() }

// CookieOpts token 下发到客户端的 cookie 参数
type CookieOpts struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// TTL 默认 72h，登录/注册时整体重置
const DefaultTTL = 72 * time.Hour
