package router

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	engine, _ := newTestEngine(t)
	c := newClient(t, engine)

	w := c.register("alice", "alice@x.com", "secret1")
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, c.cookie, "register should establish a session")

	// 刚注册的凭据必须立即可登录
	fresh := newClient(t, engine)
	w = fresh.do(http.MethodPost, "/login", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, fresh.cookie)
}

func TestRegisterValidation(t *testing.T) {
	engine, _ := newTestEngine(t)

	cases := []struct {
		name string
		in   gin.H
		msg  string
	}{
		{"missing fields", gin.H{"username": "bob"}, "Missing required fields"},
		{"short username", gin.H{"username": "ab", "email": "b@x.com", "password": "secret1"}, "Username must be 3-80 characters"},
		{"bad email", gin.H{"username": "bob", "email": "not-an-email", "password": "secret1"}, "Invalid email format"},
		{"short password", gin.H{"username": "bob", "email": "b@x.com", "password": "12345"}, "Password must be at least 6 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newClient(t, engine).do(http.MethodPost, "/register", tc.in)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.msg, errMsg(t, w))
		})
	}
}

func TestRegisterUniqueness(t *testing.T) {
	engine, _ := newTestEngine(t)
	first := newClient(t, engine)
	require.Equal(t, http.StatusCreated, first.register("alice", "alice@x.com", "secret1").Code)

	w := newClient(t, engine).register("alice", "other@x.com", "secret1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", errMsg(t, w))

	w = newClient(t, engine).register("alice2", "alice@x.com", "secret1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", errMsg(t, w))

	// 第一个账号不受影响
	w = newClient(t, engine).do(http.MethodPost, "/login", gin.H{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFailures(t *testing.T) {
	engine, _ := newTestEngine(t)
	newClient(t, engine).register("alice", "alice@x.com", "secret1")

	w := newClient(t, engine).do(http.MethodPost, "/login", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing username or password", errMsg(t, w))

	w = newClient(t, engine).do(http.MethodPost, "/login", gin.H{"username": "nobody", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", errMsg(t, w))

	w = newClient(t, engine).do(http.MethodPost, "/login", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	engine, _ := newTestEngine(t)
	c := newClient(t, engine)
	require.Equal(t, http.StatusCreated, c.register("alice", "alice@x.com", "secret1").Code)

	tok := c.cookie
	w := c.do(http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// 旧 token 立刻失效
	c.cookie = tok
	w = c.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Login required", errMsg(t, w))
}

func TestRequireLogin(t *testing.T) {
	engine, _ := newTestEngine(t)
	w := newClient(t, engine).do(http.MethodPost, "/api/posts", gin.H{"title": "x", "image_url": "http://x/1.png"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Login required", errMsg(t, w))
}

func TestProfileEdit(t *testing.T) {
	engine, _ := newTestEngine(t)
	c := newClient(t, engine)
	require.Equal(t, http.StatusCreated, c.register("alice", "alice@x.com", "secret1").Code)

	longBio := make([]byte, 600)
	for i := range longBio {
		longBio[i] = 'b'
	}
	w := c.do(http.MethodPost, "/api/profile/edit", gin.H{
		"bio": string(longBio), "avatar_url": "http://x/a.png", "is_artist": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Len(t, user["bio"], 500)
	assert.Equal(t, "http://x/a.png", user["avatar_url"])
	assert.Equal(t, true, user["is_artist"])
	// username/email 不属于资料编辑
	assert.Equal(t, "alice", user["username"])
}
