// Package limiter 基于令牌桶的接口限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	// Key 从请求上下文提取限流键
	Key(c *gin.Context) string
	// GetBucket 获取限流键对应的令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets 注册限流规则
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// Key 路由前缀
	Key string
	// FillInterval 放入令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数
	Quantum int64
}

// MethodLimiter 按路由前缀限流
type MethodLimiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// NewMethodLimiter 创建按路由限流的限流器
func NewMethodLimiter() Face {
	return &MethodLimiter{
		limiterBuckets: map[string]*ratelimit.Bucket{},
	}
}

// Key 取请求路径去掉 /api 前缀后的首段作为限流键
func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	for key := range l.limiterBuckets {
		if len(uri) >= len(key) && containsPrefix(uri, key) {
			return key
		}
	}
	return uri
}

func containsPrefix(uri, key string) bool {
	for i := 0; i+len(key) <= len(uri); i++ {
		if uri[i:i+len(key)] == key {
			return true
		}
	}
	return false
}

// GetBucket 获取限流键对应的令牌桶
func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	bucket, ok := l.limiterBuckets[key]
	return bucket, ok
}

// AddBuckets 注册限流规则
func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
