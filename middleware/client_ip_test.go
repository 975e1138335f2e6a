package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	c.Request.Header.Set("X-Real-IP", "198.51.100.4")

	if got := clientIP(c); got != "203.0.113.7" {
		t.Fatalf("expected first forwarded address, got %q", got)
	}
}

func TestClientIPUsesRealIPHeader(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set("X-Real-IP", "198.51.100.4")

	if got := clientIP(c); got != "198.51.100.4" {
		t.Fatalf("expected X-Real-IP address, got %q", got)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	c := newTestContext(t)
	c.Request.RemoteAddr = "192.0.2.1:51234"

	if got := clientIP(c); got != "192.0.2.1" {
		t.Fatalf("expected remote host without port, got %q", got)
	}
}
