package render

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestShortenSuccess tests that a 201 response's Location header replaces
// the original URL.
func TestShortenSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostFormValue("url") != "https://example.com/some/long/path" {
			t.Fatalf("unexpected url field: %q", r.PostFormValue("url"))
		}
		w.Header().Set("Location", "https://sho.rt/abc")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	s := NewShortener(server.URL, time.Second, nil)
	got := s.Shorten("https://example.com/some/long/path")
	if got != "https://sho.rt/abc" {
		t.Fatalf("expected shortened url, got %q", got)
	}
}

// TestShortenConnectionFailure tests that an unreachable service returns the
// original URL.
func TestShortenConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	s := NewShortener(server.URL, 100*time.Millisecond, nil)
	original := "https://example.com/unchanged"
	if got := s.Shorten(original); got != original {
		t.Fatalf("expected fail-open passthrough, got %q", got)
	}
}

// TestShortenUnexpectedStatus tests that a throttled (non-201) response
// returns the original URL.
func TestShortenUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	original := "https://example.com/throttled"
	s := NewShortener(server.URL, time.Second, nil)
	if got := s.Shorten(original); got != original {
		t.Fatalf("expected fail-open passthrough, got %q", got)
	}
}

// TestShortenAlreadyShortened tests that a URL on the shortener's own host
// passes through without a request.
func TestShortenAlreadyShortened(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	s := NewShortener(server.URL, time.Second, nil)
	already := server.URL + "/xyz"
	if got := s.Shorten(already); got != already {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if called {
		t.Fatalf("expected no request for an already-shortened url")
	}
}

// TestShortenNil tests that a nil shortener is a no-op.
func TestShortenNil(t *testing.T) {
	var s *Shortener
	if got := s.Shorten("https://example.com"); got != "https://example.com" {
		t.Fatalf("expected passthrough from nil shortener, got %q", got)
	}
}
