package rate_limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetVisitorReusesLimiter(t *testing.T) {
	l := New(1, 3)

	a := l.GetVisitor("10.0.0.1")
	b := l.GetVisitor("10.0.0.1")
	c := l.GetVisitor("10.0.0.2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, l.visitorCount())
}

func TestMiddlewareLimitsPerClient(t *testing.T) {
	l := New(0.001, 1)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:5000"))
}

func TestCleanupDropsIdleVisitors(t *testing.T) {
	l := New(1, 1)
	l.GetVisitor("idle")
	l.visitors["idle"].lastSeen = time.Now().Add(-10 * time.Minute)
	l.GetVisitor("fresh")

	l.cleanup(5 * time.Minute)

	assert.Equal(t, 1, l.visitorCount())
}

func TestCleanupLoopStopsWithContext(t *testing.T) {
	l := New(1, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		l.StartVisitorCleanupLoop(ctx, time.Millisecond, time.Minute)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
