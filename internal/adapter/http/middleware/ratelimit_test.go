package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/merchants", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests should pass, got %v", codes)
	}

	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", codes[2])
	}
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.1:5000", "10.0.0.2:5000"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/merchants", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("client %s should have its own bucket, got %d", addr, rec.Code)
		}
	}
}

func TestRateLimiter_CleanupClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.limiterFor("10.0.0.1")

	rl.CleanupClients(0)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.clients) != 0 {
		t.Errorf("expected idle clients to be dropped, got %d", len(rl.clients))
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:5000", nil, "10.0.0.1"},
		{"forwarded single", "10.0.0.1:5000", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"forwarded chain", "10.0.0.1:5000", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.9"}, "203.0.113.7"},
		{"real ip", "10.0.0.1:5000", map[string]string{"X-Real-IP": "203.0.113.8"}, "203.0.113.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := clientIP(req); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
