package bizyair

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// maxLineSize limits a single line of the event stream to prevent memory
// exhaustion from servers that never send a newline.
const maxLineSize = 10 * 1024 * 1024 // 10MB

const dataPrefix = "data:"

// StreamClient is a workflow call whose response is a server-sent event stream.
//
// It owns exactly one HTTP response body and is the only thing that closes it.
// Only "data:" lines are recognized; each yields one event payload with the
// prefix and surrounding whitespace removed. Blank lines, comments and other
// SSE fields are skipped, and multi-line data is not joined.
//
// Range over [StreamClient.Events] to have the connection released as soon
// as the loop ends, whether it ran to completion or broke early:
//
//	stream := bizyair.NewStreamClient(url, workflow, bizyair.WithAPIKey(key))
//	if err := stream.Open(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for data := range stream.Events() {
//	    fmt.Println(data)
//	}
//	if err := stream.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// A StreamClient is single-pass and not safe for concurrent iteration.
type StreamClient struct {
	req Request
	settings

	state   StreamState
	resp    *http.Response
	scanner *bufio.Scanner
	current string
	err     error
	closed  atomic.Bool
}

// NewStreamClient creates an unopened stream for the workflow endpoint at apiURL.
func NewStreamClient(apiURL string, payload any, opts ...Option) *StreamClient {
	return &StreamClient{
		req:      Request{URL: apiURL, Payload: payload},
		settings: newSettings(opts),
	}
}

// OpenStream creates a [StreamClient] and opens it.
//
// The caller must Close the returned stream.
func OpenStream(ctx context.Context, apiURL string, payload any, opts ...Option) (*StreamClient, error) {
	s := NewStreamClient(apiURL, payload, opts...)
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Request returns the request this stream sends.
func (s *StreamClient) Request() Request {
	return s.req
}

// State returns the current lifecycle state.
func (s *StreamClient) State() StreamState {
	return s.state
}

// Open POSTs the payload with "Accept: text/event-stream" and keeps the
// response open for incremental reads.
//
// It fails with the same errors as [Client.Send]. On failure no connection is
// held and the stream stays idle. ctx governs the whole stream: cancelling it
// aborts pending reads. [WithTimeout] is not applied.
func (s *StreamClient) Open(ctx context.Context) error {
	if s.state != StateIdle {
		return newError(CodeBadRequest, fmt.Sprintf("stream cannot be opened: already %s", s.state), 0, nil)
	}

	resp, err := s.do(ctx, s.req, true)
	if err != nil {
		return err
	}
	s.err = nil

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	s.resp = resp
	s.scanner = scanner
	s.state = StateOpen
	return nil
}

// Next advances to the next event payload.
//
// It returns false once the stream is exhausted, closed, or failed; the
// connection is released before it does. Call [StreamClient.Err] to tell
// the cases apart. Calling Next before [StreamClient.Open] is an error, and
// so is a line that is not valid UTF-8.
//
//	for stream.Next() {
//	    fmt.Println(stream.Event())
//	}
func (s *StreamClient) Next() bool {
	if s.closed.Load() || s.err != nil {
		return false
	}
	if s.state == StateIdle {
		s.err = newError(CodeBadRequest, "stream is not open", 0, nil)
		return false
	}
	if s.state != StateOpen && s.state != StateConsuming {
		return false
	}
	s.state = StateConsuming

	for s.scanner.Scan() {
		line := s.scanner.Text()
		if !utf8.ValidString(line) {
			s.err = newError(CodeStreamError, "event stream is not valid UTF-8", 0, nil)
			_ = s.Close()
			return false
		}
		if data, ok := decodeLine(line); ok {
			s.current = data
			return true
		}
	}

	if err := s.scanner.Err(); err != nil && !s.closed.Load() {
		if errors.Is(err, bufio.ErrTooLong) {
			s.err = newError(CodeStreamError,
				fmt.Sprintf("line exceeds maximum size of %d bytes", maxLineSize), 0, err)
		} else {
			s.err = connectionError(err)
		}
	}
	_ = s.Close()
	return false
}

// Event returns the payload read by the last successful [StreamClient.Next].
func (s *StreamClient) Event() string {
	return s.current
}

// Err returns the error that ended the stream, if any.
//
// Returns nil if the stream ended normally or is still active.
func (s *StreamClient) Err() error {
	return s.err
}

// Events returns a single-pass sequence of event payloads.
//
// The connection is closed when the sequence is exhausted, when the loop
// body breaks or returns, and when it panics. Ranging a second time yields
// nothing.
func (s *StreamClient) Events() iter.Seq[string] {
	return func(yield func(string) bool) {
		defer func() { _ = s.Close() }()
		for s.Next() {
			if !yield(s.current) {
				return
			}
		}
	}
}

// Run opens the stream, hands its events to fn and closes the stream on
// every exit path.
//
// The returned error is Open's error, fn's error, or [StreamClient.Err],
// in that order of precedence.
//
//	err := stream.Run(ctx, func(events iter.Seq[string]) error {
//	    for data := range events {
//	        if data == "[DONE]" {
//	            break
//	        }
//	        fmt.Println(data)
//	    }
//	    return nil
//	})
func (s *StreamClient) Run(ctx context.Context, fn func(events iter.Seq[string]) error) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := fn(s.Events()); err != nil {
		return err
	}
	return s.err
}

// Close releases the connection.
//
// Close is idempotent. Closing a stream that was never opened is a no-op
// and leaves it idle.
func (s *StreamClient) Close() error {
	if s.state == StateIdle {
		return nil
	}
	if s.closed.Swap(true) {
		return nil // Already closed
	}
	s.state = StateClosed
	if s.resp != nil && s.resp.Body != nil {
		return s.resp.Body.Close()
	}
	return nil
}

// decodeLine extracts the payload of a "data:" line.
func decodeLine(line string) (string, bool) {
	data, found := strings.CutPrefix(line, dataPrefix)
	if !found {
		return "", false
	}
	return strings.TrimSpace(data), true
}
