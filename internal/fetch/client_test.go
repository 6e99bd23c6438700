package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mokhberai/mokhber/internal/model"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.HTTP.UserAgent = "TestBot/1.0"
	cfg.HTTP.MaxBodyBytes = 1 << 20
	cfg.Robots.Enabled = false
	cfg.Cache.Enabled = false
	cfg.Rate.RequestsPerSecond = 100
	cfg.Rate.Burst = 10
	return cfg
}

func TestClientGet(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	client := NewClient(testConfig())
	res, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(res.Body) != "<html><body>OK</body></html>" {
		t.Errorf("Unexpected body: %s", res.Body)
	}
	if gotUA != "TestBot/1.0" {
		t.Errorf("Expected User-Agent TestBot/1.0, got %q", gotUA)
	}
	if res.Cached {
		t.Error("Expected fresh fetch, got cached result")
	}
}

func TestClientGet_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig())
	_, err := client.Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if got := err.Error(); got != "unexpected status: 404 404 Not Found" {
		t.Errorf("Unexpected error: %s", got)
	}
}

func TestClientGet_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("x", 100))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.HTTP.MaxBodyBytes = 10
	client := NewClient(cfg)
	res, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(res.Body) != 10 {
		t.Errorf("Expected body truncated to 10 bytes, got %d", len(res.Body))
	}
}

func TestClientGet_RedirectLimit(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient(testConfig())
	_, err := client.Get(context.Background(), server.URL+"/a")
	if err == nil {
		t.Fatal("Expected error for redirect loop, got nil")
	}
	if !strings.Contains(err.Error(), "redirects") {
		t.Errorf("Expected redirect error, got: %v", err)
	}
}

func TestClientGet_FollowsRedirect(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, server.URL+"/new", http.StatusMovedPermanently)
			return
		}
		_, _ = fmt.Fprint(w, "moved")
	}))
	defer server.Close()

	client := NewClient(testConfig())
	res, err := client.Get(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.FinalURL != server.URL+"/new" {
		t.Errorf("Expected final URL %s/new, got %s", server.URL, res.FinalURL)
	}
}

func TestClientGet_Cache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, "payload")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = time.Minute
	client := NewClient(cfg)

	first, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if first.Cached {
		t.Error("first fetch should not be cached")
	}

	second, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if !second.Cached {
		t.Error("second fetch should come from cache")
	}
	if string(second.Body) != "payload" {
		t.Errorf("Unexpected cached body: %s", second.Body)
	}
	if hits.Load() != 1 {
		t.Errorf("Expected 1 server hit, got %d", hits.Load())
	}
}

func TestClientGet_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /blocked\n")
			return
		}
		_, _ = fmt.Fprint(w, "content")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Robots.Enabled = true
	client := NewClient(cfg)

	if _, err := client.Get(context.Background(), server.URL+"/open"); err != nil {
		t.Errorf("Expected /open to be allowed, got %v", err)
	}

	_, err := client.Get(context.Background(), server.URL+"/blocked")
	if !errors.Is(err, ErrRobotsDisallowed) {
		t.Errorf("Expected ErrRobotsDisallowed, got %v", err)
	}
}

func TestClientGet_RobotsMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprint(w, "content")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Robots.Enabled = true
	client := NewClient(cfg)

	res, err := client.Get(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("Expected missing robots.txt to allow fetch, got %v", err)
	}
	if string(res.Body) != "content" {
		t.Errorf("Unexpected body: %s", res.Body)
	}
}

func TestSubject(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.sciencedaily.com/releases/2025/01/genetic_drift_study.htm", "genetic drift study"},
		{"https://example.com/some-article-title", "some article title"},
		{"https://example.com/", "example.com"},
		{"https://example.com/a/b/last_one.html", "last one"},
	}

	for _, tt := range tests {
		if got := Subject(tt.url); got != tt.expected {
			t.Errorf("Subject(%q) = %q, want %q", tt.url, got, tt.expected)
		}
	}
}
