package router

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	keyFunc := KeyByIPAndJSONField("customer_email")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"customer_email":" Ada@Example.com "}`))

	key := keyFunc(c)
	if !strings.HasPrefix(key, "ada@example.com|") {
		t.Fatalf("expected lowercased email prefix, got %q", key)
	}

	// The body must still be readable by the handler afterwards.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("re-read body: %v", err)
	}
	if !strings.Contains(string(body), "Ada@Example.com") {
		t.Fatalf("body consumed by key func: %q", body)
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	keyFunc := KeyByIPAndJSONField("customer_email")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"rating":5}`))

	key := keyFunc(c)
	if strings.Contains(key, "|") {
		t.Fatalf("expected bare IP key, got %q", key)
	}
}

func TestRateLimitMiddlewareDisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/reviews",
		RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP),
		func(c *gin.Context) { c.Status(200) },
	)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/reviews", nil)
		r.ServeHTTP(w, req)
		if w.Code != 200 {
			t.Fatalf("request %d should pass without redis, got %d", i, w.Code)
		}
	}
}
