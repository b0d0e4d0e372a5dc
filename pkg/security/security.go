package security

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	defaultMaxRequests = 600
	defaultWindow      = time.Minute
)

// Settings 安全中间件的动态参数(CORS白名单与限流)。
// 配置热加载时通过Update替换,中间件每次请求读取最新值。
type Settings struct {
	mu          sync.RWMutex
	origins     map[string]bool
	maxRequests int
	window      time.Duration
}

func NewSettings(origins []string, maxRequests int, window time.Duration) *Settings {
	s := &Settings{}
	s.Update(origins, maxRequests, window)
	return s
}

// Update replaces the origin whitelist and rate-limit parameters.
// Non-positive limits fall back to the package defaults.
func (s *Settings) Update(origins []string, maxRequests int, window time.Duration) {
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	if window <= 0 {
		window = defaultWindow
	}

	set := make(map[string]bool, len(origins))
	for _, origin := range origins {
		set[origin] = true
	}

	s.mu.Lock()
	s.origins = set
	s.maxRequests = maxRequests
	s.window = window
	s.mu.Unlock()
}

func (s *Settings) originAllowed(origin string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origins[origin]
}

func (s *Settings) limits() (int, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxRequests, s.window
}

// CORS 只对白名单内的Origin回显并放行Credentials
func CORS(settings *Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && settings.originAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// Secure 补充安全相关的响应头
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		// HSTS仅在TLS连接上生效
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		c.Next()
	}
}

// visitor 记录单个IP的限流器与参数。参数变更后惰性重建。
type visitor struct {
	limiter     *rate.Limiter
	maxRequests int
	window      time.Duration
	lastSeen    time.Time
}

// RateLimiter 按客户端IP限流。限流参数取自settings,热更新后
// 已有IP在下一次请求时换用新参数;不活跃的条目定期清理。
func RateLimiter(settings *Settings) gin.HandlerFunc {
	store := make(map[string]*visitor)
	var mu sync.Mutex

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			_, window := settings.limits()
			expiry := window * 3
			if expiry < time.Minute {
				expiry = time.Minute
			}
			mu.Lock()
			for ip, v := range store {
				if time.Since(v.lastSeen) > expiry {
					delete(store, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		key := c.ClientIP()
		maxRequests, window := settings.limits()

		mu.Lock()
		v, exists := store[key]
		if !exists || v.maxRequests != maxRequests || v.window != window {
			v = &visitor{
				limiter:     rate.NewLimiter(rate.Every(window/time.Duration(maxRequests)), maxRequests),
				maxRequests: maxRequests,
				window:      window,
			}
			store[key] = v
		}
		v.lastSeen = time.Now()
		mu.Unlock()

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
