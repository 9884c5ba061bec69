package router

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteLifecycle(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := newClient(t, engine)
	require.Equal(t, http.StatusCreated, alice.register("alice", "alice@x.com", "secret1").Code)
	id := createPost(t, alice, "Sky", nil, false)

	bob := newClient(t, engine)
	require.Equal(t, http.StatusCreated, bob.register("bob", "bob@x.com", "secret1").Code)
	path := fmt.Sprintf("/api/favorites/%.0f", id)

	w := bob.do(http.MethodPost, "/api/favorites/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", errMsg(t, w))

	w = bob.do(http.MethodPost, path, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// 重复收藏按冲突拒绝
	w = bob.do(http.MethodPost, path, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already favorited", errMsg(t, w))

	w = bob.do(http.MethodGet, "/api/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["posts"], 1)

	w = bob.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = bob.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Favorite not found", errMsg(t, w))

	// 取消后可以再收藏
	w = bob.do(http.MethodPost, path, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestReviewValidation(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := newClient(t, engine)
	require.Equal(t, http.StatusCreated, alice.register("alice", "alice@x.com", "secret1").Code)
	id := createPost(t, alice, "Sky", nil, false)
	path := fmt.Sprintf("/api/reviews/%.0f", id)

	bob := newClient(t, engine)
	require.Equal(t, http.StatusCreated, bob.register("bob", "bob@x.com", "secret1").Code)

	for _, bad := range []any{0, 6, 3.5, nil} {
		body := gin.H{}
		if bad != nil {
			body["rating"] = bad
		}
		w := bob.do(http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %v", bad)
		assert.Equal(t, "Rating must be 1-5", errMsg(t, w))
	}

	// 非数字 rating 连绑定都过不了
	w := bob.do(http.MethodPost, path, gin.H{"rating": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = bob.do(http.MethodPost, path, gin.H{"rating": 5, "comment": "great"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// 同一 (user, post) 允许重复评价，帖子存在性也不校验——与既有产品行为一致
	w = bob.do(http.MethodPost, path, gin.H{"rating": 4})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = bob.do(http.MethodPost, "/api/reviews/99999", gin.H{"rating": 3})
	assert.Equal(t, http.StatusCreated, w.Code)
}
