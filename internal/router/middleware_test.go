package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestUserJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(UserJWTAuthMiddleware("", nil))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestOptionalUserMiddlewareIgnoresBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(OptionalUserMiddleware("test-secret"))
	r.GET("/products", func(c *gin.Context) {
		_, hasUser := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"has_user": hasUser})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"has_user":false`) {
		t.Fatalf("bad token should not inject user, got %s", w.Body.String())
	}
}

func TestIsIssuedAfterInvalidBefore(t *testing.T) {
	now := time.Now()
	issued := jwt.NewNumericDate(now)

	if !isIssuedAfterInvalidBefore(issued, nil) {
		t.Fatalf("nil invalid_before should pass")
	}
	earlier := now.Add(-time.Hour)
	if !isIssuedAfterInvalidBefore(issued, &earlier) {
		t.Fatalf("token issued after invalid_before should pass")
	}
	later := now.Add(time.Hour)
	if isIssuedAfterInvalidBefore(issued, &later) {
		t.Fatalf("token issued before invalid_before should fail")
	}
	if isIssuedAfterInvalidBefore(nil, &earlier) {
		t.Fatalf("missing issued_at with invalid_before should fail")
	}

	if !isIssuedAfterInvalidBeforeUnix(issued, 0) {
		t.Fatalf("zero invalid_before unix should pass")
	}
	if isIssuedAfterInvalidBeforeUnix(issued, now.Add(time.Hour).Unix()) {
		t.Fatalf("token issued before invalid_before unix should fail")
	}
}

func TestIsActiveUserStatus(t *testing.T) {
	if !isActiveUserStatus(" Active ") {
		t.Fatalf("active status should match ignoring case and spaces")
	}
	if isActiveUserStatus("disabled") {
		t.Fatalf("disabled status should not match")
	}
}
