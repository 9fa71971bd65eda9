package bizyair

import (
	"net/http"
	"time"
)

// Option configures a [Client] or a [StreamClient].
type Option func(*settings)

// settings is shared by both client modes. It is fixed once the client is built.
type settings struct {
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func newSettings(opts []Option) settings {
	s := settings{
		httpClient: http.DefaultClient,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithAPIKey sets the API key sent as a bearer token.
func WithAPIKey(key string) Option {
	return func(s *settings) {
		s.apiKey = key
	}
}

// WithTimeout bounds a synchronous [Client.Send] call.
//
// It does not apply to streams. By default no timeout is set and the
// HTTP client's own behavior governs hung connections.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *settings) {
		if httpClient != nil {
			s.httpClient = httpClient
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.userAgent = ua
	}
}
