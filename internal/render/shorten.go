package render

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"hookrelay/internal"
)

// DefaultShortenTimeout bounds the single blocking call a rendered line may
// make. The shortening service is best-effort; a slow upstream must not
// stall rendering.
const DefaultShortenTimeout = 4 * time.Second

// Shortener compresses URLs through a git.io-style service. Every failure
// mode (connection error, timeout, unexpected status, missing Location)
// falls back to the original URL. A nil Shortener is valid and shortens
// nothing.
type Shortener struct {
	endpoint string
	host     string
	client   *http.Client
	logger   *log.Logger
}

// NewShortener builds a client for the given shortening endpoint. An empty
// endpoint disables shortening. Timeouts at or below zero use
// DefaultShortenTimeout.
func NewShortener(endpoint string, timeout time.Duration, logger *log.Logger) *Shortener {
	if endpoint == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultShortenTimeout
	}
	host := ""
	if parsed, err := url.Parse(endpoint); err == nil {
		host = parsed.Host
	}
	return &Shortener{
		endpoint: endpoint,
		host:     host,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Shorten returns a compressed form of target, or target itself when the
// service is unavailable, throttled, or the URL is already shortened.
func (s *Shortener) Shorten(target string) string {
	if s == nil || target == "" {
		return target
	}

	// The provider may start handing us pre-shortened links; shortening a
	// link on the service's own host is a no-op.
	if parsed, err := url.Parse(target); err == nil && s.host != "" && parsed.Host == s.host {
		return target
	}

	resp, err := s.client.PostForm(s.endpoint, url.Values{"url": {target}})
	if err != nil {
		s.fail("shorten %s: %v", target, err)
		return target
	}
	defer resp.Body.Close()

	// Anything but 201 usually means the upstream is throttling us. There
	// is no retry; the next call simply tries again.
	if resp.StatusCode != http.StatusCreated {
		s.fail("shorten %s: unexpected status %d", target, resp.StatusCode)
		return target
	}

	location := resp.Header.Get("Location")
	if location == "" {
		s.fail("shorten %s: no Location header", target)
		return target
	}
	return location
}

func (s *Shortener) fail(format string, args ...interface{}) {
	internal.IncShortenFailure()
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
