package imagesearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func searchServer(t *testing.T, urls ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID key123" {
			t.Errorf("authorization = %q", got)
		}
		results := make([]map[string]any, 0, len(urls))
		for _, u := range urls {
			results = append(results, map[string]any{"urls": map[string]string{"small": u}})
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
}

func TestSearch(t *testing.T) {
	server := searchServer(t, "https://img/1", "https://img/2")
	defer server.Close()

	c := NewClient("key123", WithBaseURL(server.URL))
	urls, err := c.Search(context.Background(), "Tower Bridge", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://img/1" {
		t.Errorf("urls = %v", urls)
	}
}

func TestResolveFirstTermWins(t *testing.T) {
	server := searchServer(t, "https://img/1")
	defer server.Close()

	c := NewClient("key123", WithBaseURL(server.URL))
	urls, err := c.Resolve(context.Background(), []string{"Big Ben", "Tower Bridge"}, 2)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://img/1" {
		t.Errorf("urls = %v", urls)
	}
}

func TestResolveFallsBackOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient("key123", WithBaseURL(server.URL))
	urls, err := c.Resolve(context.Background(), []string{"Big Ben"}, 2)
	if err == nil {
		t.Error("expected the lookup errors to be reported")
	}
	if len(urls) != 2 {
		t.Fatalf("urls = %v, want 2 fallback URLs", urls)
	}
	if !strings.Contains(urls[0], "source.unsplash.com") {
		t.Errorf("urls[0] = %q, want source fallback", urls[0])
	}
	if !strings.Contains(urls[0], "Big+Ben") {
		t.Errorf("urls[0] = %q, want escaped term", urls[0])
	}
}

func TestResolveUnconfiguredUsesFallback(t *testing.T) {
	c := NewClient("")
	urls, err := c.Resolve(context.Background(), []string{"Louvre"}, 2)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(urls) != 2 || !strings.Contains(urls[1], "travel") {
		t.Errorf("urls = %v", urls)
	}
}

func TestResolveNoTerms(t *testing.T) {
	c := NewClient("key123")
	urls, err := c.Resolve(context.Background(), nil, 2)
	if err != nil || urls != nil {
		t.Errorf("resolve = (%v, %v), want (nil, nil)", urls, err)
	}
}
