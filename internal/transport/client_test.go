package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient()

		if c.httpClient.Timeout != 10*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 10*time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient(WithTimeout(3 * time.Second))
		if c.httpClient.Timeout != 3*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 3*time.Second)
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		custom := &http.Client{Timeout: time.Second}
		c := NewClient(WithHTTPClient(custom))
		if c.httpClient != custom {
			t.Error("custom HTTP client not set")
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient(WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})
}

func TestGet(t *testing.T) {
	t.Run("returns body on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		c := NewClient()
		body, err := c.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(body) != `{"ok":true}` {
			t.Errorf("body = %q, want %q", body, `{"ok":true}`)
		}
	})

	t.Run("status >= 400 returns HTTPError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewClient()
		_, err := c.Get(context.Background(), server.URL)

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("error = %T, want *HTTPError", err)
		}
		if httpErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("StatusCode = %d, want %d", httpErr.StatusCode, http.StatusTooManyRequests)
		}
	})

	t.Run("unreachable server returns error", func(t *testing.T) {
		c := NewClient(WithTimeout(time.Second))
		_, err := c.Get(context.Background(), "http://127.0.0.1:1")
		if err == nil {
			t.Fatal("expected network error")
		}
	})

	t.Run("cancelled context aborts request", func(t *testing.T) {
		blocked := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-blocked
		}))
		defer server.Close()
		defer close(blocked)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		c := NewClient()
		_, err := c.Get(ctx, server.URL)
		if err == nil {
			t.Fatal("expected context deadline error")
		}
	})
}
