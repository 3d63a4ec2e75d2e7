package public

import "github.com/shopworks/storefront/internal/provider"

// Handler 商城侧接口处理器入口
// 说明：该处理器仅用于商城、游客、用户侧 API。
type Handler struct {
	*provider.Container
}

// New 创建商城处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
