package util

import (
	"context"
	"sync"
)

// RequestCache 请求级结果缓存。同一个请求里 GetLesson / GetLessonPercentage
// 都会解析一次活跃课时，用它避免重复查询。生命周期与单个请求相同，
// 键里带上 userID，绝不跨用户、跨请求复用。
type RequestCache struct {
	mu     sync.Mutex
	values map[string]interface{}
}

func NewRequestCache() *RequestCache {
	return &RequestCache{values: make(map[string]interface{})}
}

// GetOrCompute 按键返回缓存值；未命中时执行 compute 并缓存结果。
// nil 接收者直接透传 compute，服务层不依赖中间件是否装配。
func (rc *RequestCache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	if rc == nil {
		return compute()
	}

	rc.mu.Lock()
	if v, ok := rc.values[key]; ok {
		rc.mu.Unlock()
		return v, nil
	}
	rc.mu.Unlock()

	v, err := compute()
	if err != nil {
		return nil, err
	}

	rc.mu.Lock()
	rc.values[key] = v
	rc.mu.Unlock()
	return v, nil
}

type requestCacheKey struct{}

func WithRequestCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestCacheKey{}, NewRequestCache())
}

// RequestCacheFrom 取出请求级缓存；没有装配时返回 nil，调用方可直接使用。
func RequestCacheFrom(ctx context.Context) *RequestCache {
	if ctx == nil {
		return nil
	}
	rc, _ := ctx.Value(requestCacheKey{}).(*RequestCache)
	return rc
}
