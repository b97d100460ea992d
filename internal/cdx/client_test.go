package cdx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

// TestNewClient tests client construction and option validation.
func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Endpoint() != DefaultEndpoint {
			t.Errorf("expected endpoint %q, got %q", DefaultEndpoint, c.Endpoint())
		}
		if c.timeout != DefaultTimeout {
			t.Errorf("expected timeout %v, got %v", DefaultTimeout, c.timeout)
		}
		if c.httpClient.Timeout != DefaultTimeout {
			t.Errorf("expected http client timeout %v, got %v", DefaultTimeout, c.httpClient.Timeout)
		}
	})

	t.Run("ignores non-positive timeout", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient(WithTimeout(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.timeout != DefaultTimeout {
			t.Errorf("expected default timeout, got %v", c.timeout)
		}
	})

	t.Run("rejects invalid endpoint", func(t *testing.T) {
		t.Parallel()

		for _, endpoint := range []string{"", "ftp://example.com/cdx", "not a url", "/relative"} {
			_, err := NewClient(WithEndpoint(endpoint))
			if !errors.Is(err, ErrInvalidEndpoint) {
				t.Errorf("endpoint %q: expected ErrInvalidEndpoint, got %v", endpoint, err)
			}
		}
	})

	t.Run("rejects invalid proxy address", func(t *testing.T) {
		t.Parallel()

		for _, addr := range []string{"localhost", ":9050", "127.0.0.1:0", "127.0.0.1:70000", "127.0.0.1:abc"} {
			_, err := NewClient(WithProxy(addr))
			if !errors.Is(err, ErrInvalidProxyAddress) {
				t.Errorf("proxy %q: expected ErrInvalidProxyAddress, got %v", addr, err)
			}
		}
	})

	t.Run("accepts valid proxy address", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient(WithProxy("127.0.0.1:9050"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.httpClient == nil {
			t.Error("expected http client to be built")
		}
	})
}

// TestClient_QueryURL tests request URL construction.
func TestClient_QueryURL(t *testing.T) {
	t.Parallel()

	c, err := NewClient(WithEndpoint("http://cdx.test/search"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		domain     string
		wantURLArg string
	}{
		{name: "ascii domain", domain: "example.com", wantURLArg: "example.com/*"},
		{name: "internationalized domain", domain: "bücher.example", wantURLArg: "xn--bcher-kva.example/*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := c.QueryURL(tt.domain)
			if !strings.HasPrefix(raw, "http://cdx.test/search?") {
				t.Fatalf("unexpected query URL prefix: %s", raw)
			}
			u, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("query URL does not parse: %v", err)
			}
			q := u.Query()
			want := map[string]string{
				"url":       tt.wantURLArg,
				"output":    "text",
				"matchType": "domain",
				"collapse":  "urlkey",
				"fl":        "original",
			}
			for k, v := range want {
				if got := q.Get(k); got != v {
					t.Errorf("param %s: expected %q, got %q", k, v, got)
				}
			}
		})
	}
}

// TestClient_Fetch tests fetching against a local index.
func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns raw lines and sends user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotURL = r.URL.Query().Get("url")
			fmt.Fprint(w, "original\nhttp://example.com/a\nhttp://example.com/b?x=1\n")
		}))
		defer server.Close()

		c, err := NewClient(WithEndpoint(server.URL), WithUserAgent("waybackrecon-test"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines, err := c.Fetch(context.Background(), "example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"original", "http://example.com/a", "http://example.com/b?x=1"}
		if len(lines) != len(want) {
			t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
		}
		for i := range want {
			if lines[i] != want[i] {
				t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
			}
		}
		if gotUA != "waybackrecon-test" {
			t.Errorf("expected user agent to be sent, got %q", gotUA)
		}
		if gotURL != "example.com/*" {
			t.Errorf("expected url param 'example.com/*', got %q", gotURL)
		}
	})

	t.Run("empty body yields no lines", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		c, err := NewClient(WithEndpoint(server.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines, err := c.Fetch(context.Background(), "example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(lines) != 0 {
			t.Errorf("expected no lines, got %v", lines)
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "slow down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c, err := NewClient(WithEndpoint(server.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = c.Fetch(context.Background(), "example.com")
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
		}
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected *StatusError, got %T", err)
		}
		if statusErr.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", statusErr.StatusCode)
		}
		if statusErr.Domain != "example.com" {
			t.Errorf("expected domain example.com, got %q", statusErr.Domain)
		}
	})

	t.Run("timeout is an error", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-done:
			}
		}))
		defer server.Close()
		defer close(done)

		c, err := NewClient(WithEndpoint(server.URL), WithTimeout(50*time.Millisecond))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := c.Fetch(context.Background(), "example.com"); err == nil {
			t.Fatal("expected timeout error")
		}
	})

	t.Run("canceled context is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintln(w, "http://example.com/")
		}))
		defer server.Close()

		c, err := NewClient(WithEndpoint(server.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := c.Fetch(ctx, "example.com"); err == nil {
			t.Fatal("expected error for canceled context")
		}
	})

	t.Run("unreachable endpoint is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		endpoint := server.URL
		server.Close()

		c, err := NewClient(WithEndpoint(endpoint), WithTimeout(time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := c.Fetch(context.Background(), "example.com"); err == nil {
			t.Fatal("expected connection error")
		}
	})
}
