package bizyair_test

import (
	"io"
	"net/http"
	"strings"
	"sync/atomic"
)

const testKey = "sk-test-0123456789"

// trackingBody is a response body that records how often it was closed.
type trackingBody struct {
	r      io.Reader
	closes atomic.Int32
}

func newTrackingBody(s string) *trackingBody {
	return &trackingBody{r: strings.NewReader(s)}
}

func (b *trackingBody) Read(p []byte) (int, error) {
	return b.r.Read(p)
}

func (b *trackingBody) Close() error {
	b.closes.Add(1)
	return nil
}

func (b *trackingBody) closed() bool {
	return b.closes.Load() > 0
}

// roundTripFunc lets a function act as the transport of an http.Client.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// mockTransport returns a client whose every request is answered with
// status and body, without touching the network.
func mockTransport(status int, body io.ReadCloser) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Header:     http.Header{"Content-Type": []string{"text/event-stream"}},
			Body:       body,
			Request:    r,
		}, nil
	})}
}

// errReader returns data, then err.
type errReader struct {
	data string
	err  error
	done bool
}

func (r *errReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	return copy(p, r.data), nil
}
