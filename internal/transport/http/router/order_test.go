package router

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderEligibility(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := newClient(t, engine)
	require.Equal(t, http.StatusCreated, alice.register("alice", "alice@x.com", "secret1").Code)
	notForSale := createPost(t, alice, "Keep", 10, false)
	ownPost := createPost(t, alice, "Mine", 20, true)

	bob := newClient(t, engine)
	require.Equal(t, http.StatusCreated, bob.register("bob", "bob@x.com", "secret1").Code)

	w := bob.do(http.MethodPost, "/api/orders/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", errMsg(t, w))

	w = bob.do(http.MethodPost, fmt.Sprintf("/api/orders/%.0f", notForSale), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Post not for sale", errMsg(t, w))

	w = alice.do(http.MethodPost, fmt.Sprintf("/api/orders/%.0f", ownPost), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot buy own post", errMsg(t, w))
}

func TestOrderPriceSnapshot(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := newClient(t, engine)
	require.Equal(t, http.StatusCreated, alice.register("alice", "alice@x.com", "secret1").Code)
	id := createPost(t, alice, "Sky", 50, true)

	bob := newClient(t, engine)
	require.Equal(t, http.StatusCreated, bob.register("bob", "bob@x.com", "secret1").Code)

	w := bob.do(http.MethodPost, fmt.Sprintf("/api/orders/%.0f", id), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotZero(t, decode(t, w)["order_id"])

	// 卖家改价，已成订单的价格不动
	w = alice.do(http.MethodPut, fmt.Sprintf("/api/posts/%.0f", id), gin.H{"price": 500})
	require.Equal(t, http.StatusOK, w.Code)

	w = bob.do(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode(t, w)["orders"].([]any)
	require.Len(t, orders, 1)
	o := orders[0].(map[string]any)
	assert.Equal(t, float64(50), o["price"])
	assert.Equal(t, "pending", o["status"])
}

// 注册 alice → 发帖 → bob 登录 → 下单，全链路
func TestMarketplaceEndToEnd(t *testing.T) {
	engine, _ := newTestEngine(t)

	alice := newClient(t, engine)
	w := alice.register("alice", "alice@x.com", "secret1")
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, alice.cookie)

	w = alice.do(http.MethodPost, "/api/posts", gin.H{
		"title": "Sky", "image_url": "http://x/1.png", "price": 50, "is_for_sale": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decode(t, w)["post_id"].(float64)

	bob := newClient(t, engine)
	require.Equal(t, http.StatusCreated, bob.register("bob", "bob@x.com", "secret1").Code)
	w = bob.do(http.MethodPost, "/login", gin.H{"username": "bob", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = bob.do(http.MethodPost, fmt.Sprintf("/api/orders/%.0f", postID), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = bob.do(http.MethodGet, "/api/orders", nil)
	orders := decode(t, w)["orders"].([]any)
	require.Len(t, orders, 1)
	o := orders[0].(map[string]any)
	assert.Equal(t, float64(50), o["price"])
	assert.Equal(t, "pending", o["status"])
}
