package docsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rentproof/rentproof/internal/model"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.HandleFunc("/agreement.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Tenant: Jane Doe\nRent: 1200.00\n"))
	})
	mux.HandleFunc("/agreement.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><script>x()</script><p>Tenant: Jane Doe</p></body></html>`))
	})
	mux.HandleFunc("/private/agreement.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("should never be served"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testFetcher() *Fetcher {
	return NewFetcher(model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "rentproof-test",
		MaxBodyBytes: 1 << 20,
	}, nil)
}

func TestFetcher_PlainText(t *testing.T) {
	server := testServer(t)

	text, err := testFetcher().Fetch(context.Background(), server.URL+"/agreement.txt")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(text, "Tenant: Jane Doe") {
		t.Errorf("text = %q", text)
	}
}

func TestFetcher_HTMLReducedToVisibleText(t *testing.T) {
	server := testServer(t)

	text, err := testFetcher().Fetch(context.Background(), server.URL+"/agreement.html")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(text, "Tenant: Jane Doe") {
		t.Errorf("text = %q", text)
	}
	if strings.Contains(text, "x()") {
		t.Errorf("script content leaked: %q", text)
	}
}

func TestFetcher_RobotsDisallowed(t *testing.T) {
	server := testServer(t)

	_, err := testFetcher().Fetch(context.Background(), server.URL+"/private/agreement.txt")
	if err == nil {
		t.Fatal("expected robots.txt to block the fetch")
	}
	if !strings.Contains(err.Error(), "robots.txt") {
		t.Errorf("error = %v", err)
	}
}

func TestFetcher_NotFound(t *testing.T) {
	server := testServer(t)

	if _, err := testFetcher().Fetch(context.Background(), server.URL+"/missing.txt"); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetcher_BodyTruncatedAtLimit(t *testing.T) {
	server := testServer(t)

	fetcher := NewFetcher(model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "rentproof-test",
		MaxBodyBytes: 10,
	}, nil)

	text, err := fetcher.Fetch(context.Background(), server.URL+"/agreement.txt")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(text) > 10 {
		t.Errorf("body not truncated: %d bytes", len(text))
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	checker := NewRobotsChecker("rentproof-test", 5*time.Second)
	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("missing robots.txt should allow fetching")
	}
	if delay != 0 {
		t.Errorf("delay = %v, want 0", delay)
	}
}

func TestRobotsChecker_CrawlDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nCrawl-delay: 2\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("rentproof-test", 5*time.Second)
	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/doc")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("expected fetch to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("delay = %v, want 2s", delay)
	}
}
