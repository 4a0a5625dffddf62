// internal/app/system/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("k") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("k") {
		t.Fatal("fourth request should be blocked")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first request for a should be allowed")
	}
	if !l.Allow("b") {
		t.Fatal("first request for b should be allowed")
	}
	if l.Allow("a") {
		t.Fatal("second request for a should be blocked")
	}
}

func TestLimiterWindowExpires(t *testing.T) {
	l := New(1, 20*time.Millisecond)

	if !l.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second request should be blocked")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow("k") {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestLimiterReset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("second request should be blocked")
	}

	l.Reset("k")

	if !l.Allow("k") {
		t.Fatal("request after reset should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.0.2.1:54321",
			want:       "192.0.2.1",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-forwarded-for chain uses first",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			want:       "198.51.100.7",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCredentialLimiterBlocksEmail(t *testing.T) {
	cl := NewCredentialLimiter(100, time.Minute, 2, time.Minute)

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest("POST", "/login", nil)
		r.RemoteAddr = "192.0.2.1:1000"
		ok, _ := cl.Check(r, "User@Example.com")
		if !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "192.0.2.99:1000" // different IP, same account
	ok, msg := cl.Check(r, "user@example.com")
	if ok {
		t.Fatal("third attempt for same email should be blocked")
	}
	if msg == "" {
		t.Fatal("blocked attempt should include a message")
	}

	cl.ResetEmail("user@example.com")

	r = httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "192.0.2.99:1000"
	if ok, _ := cl.Check(r, "user@example.com"); !ok {
		t.Fatal("attempt after ResetEmail should be allowed")
	}
}
