package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"artist-market/internal/core/database"
	"artist-market/internal/core/sessions"
)

const testCookie = "session"

func newTestEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// 内存 sqlite 只能单连接，多连接会各拿一份空库
	db, err := database.New(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store := sessions.NewMemory(time.Hour)
	cookie := sessions.CookieOpts{Name: testCookie, TTL: time.Hour}
	return NewAPIEngine(zap.NewNop(), db, store, nil, cookie), db
}

// client 一个已注册/未注册用户的视角，自动携带 session cookie
type client struct {
	t      *testing.T
	engine *gin.Engine
	cookie string
}

func newClient(t *testing.T, engine *gin.Engine) *client {
	return &client{t: t, engine: engine}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: c.cookie})
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookie {
			c.cookie = ck.Value
		}
	}
	return w
}

func (c *client) register(username, email, password string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(http.MethodPost, "/register", gin.H{
		"username": username, "email": email, "password": password,
	})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func errMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decode(t, w)["error"].(string)
	return msg
}
