package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module 业务模块：public 挂公开路由，api 挂登录后的 /api 路由
type Module interface {
	Mount(public, api *gin.RouterGroup)
}

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

type Registry struct{ mods []Module }

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Add(mods ...Module) {
	r.mods = append(r.mods, mods...)
}

func (r *Registry) MountAll(public, api *gin.RouterGroup) {
	mods := append([]Module(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(public, api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
