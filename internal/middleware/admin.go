package middleware

import (
	"sync"

	"finlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminPolicy 配置提供的管理员白名单。配置热更新时整体替换，
// 不存在编译进二进制的特权 ID。
type AdminPolicy struct {
	mu  sync.RWMutex
	ids map[string]bool
}

func NewAdminPolicy(ids []string) *AdminPolicy {
	p := &AdminPolicy{}
	p.Update(ids)
	return p
}

func (p *AdminPolicy) Update(ids []string) {
	next := make(map[string]bool, len(ids))
	for _, id := range ids {
		next[id] = true
	}
	p.mu.Lock()
	p.ids = next
	p.mu.Unlock()
}

func (p *AdminPolicy) Allow(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ids[userID]
}

func AdminMiddleware(policy *AdminPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !policy.Allow(user.UserID()) {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
