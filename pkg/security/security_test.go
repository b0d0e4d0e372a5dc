package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsRouter(settings *Settings) *gin.Engine {
	router := gin.New()
	router.Use(CORS(settings))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func doRequest(router *gin.Engine, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings(nil, 0, 0)

	maxRequests, window := s.limits()
	if maxRequests != defaultMaxRequests {
		t.Fatalf("maxRequests = %d, want default %d", maxRequests, defaultMaxRequests)
	}
	if window != defaultWindow {
		t.Fatalf("window = %v, want default %v", window, defaultWindow)
	}
}

func TestCORSOriginWhitelist(t *testing.T) {
	s := NewSettings([]string{"https://game.example.com"}, 100, time.Minute)
	router := corsRouter(s)

	w := doRequest(router, "https://game.example.com")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://game.example.com" {
		t.Fatalf("allowed origin not echoed, got %q", got)
	}

	w = doRequest(router, "https://evil.example.com")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unlisted origin echoed: %q", got)
	}
}

func TestCORSReloadTakesEffect(t *testing.T) {
	s := NewSettings([]string{"https://old.example.com"}, 100, time.Minute)
	router := corsRouter(s)

	if w := doRequest(router, "https://new.example.com"); w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("origin allowed before reload")
	}

	// 模拟配置热加载
	s.Update([]string{"https://new.example.com"}, 100, time.Minute)

	if w := doRequest(router, "https://new.example.com"); w.Header().Get("Access-Control-Allow-Origin") != "https://new.example.com" {
		t.Fatal("reloaded origin not allowed")
	}
	if w := doRequest(router, "https://old.example.com"); w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("dropped origin still allowed after reload")
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	s := NewSettings(nil, 2, time.Minute)
	router := gin.New()
	router.Use(RateLimiter(s))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	request := func() int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "198.51.100.7:4242"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := request(); code != http.StatusOK {
			t.Fatalf("request %d blocked with %d inside the limit", i+1, code)
		}
	}
	if code := request(); code != http.StatusTooManyRequests {
		t.Fatalf("request over the limit got %d, want 429", code)
	}

	// 热更新限流参数后,同一IP换用新的限流器
	s.Update(nil, 1, time.Minute)
	if code := request(); code != http.StatusOK {
		t.Fatalf("first request after reload got %d", code)
	}
	if code := request(); code != http.StatusTooManyRequests {
		t.Fatalf("second request after reload got %d, want 429", code)
	}
}
