package bizyair

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-openapi/runtime"
)

// maxErrorBodySize limits how much of a non-2xx response body is kept
// on the [StatusError].
const maxErrorBodySize = 4096

var defaultUserAgent = "bizyair-go/" + Version

// Client sends one workflow request and returns the whole response body.
//
// A Client holds no connection between calls. It is not meant to be shared
// between goroutines without external synchronization.
type Client struct {
	req Request
	settings
}

// NewClient creates a synchronous client for the workflow endpoint at apiURL.
//
//	client := bizyair.NewClient(url, map[string]any{"prompt": "a cat"},
//	    bizyair.WithAPIKey(os.Getenv("BIZYAIR_API_KEY")),
//	)
//	body, err := client.Send(ctx)
func NewClient(apiURL string, payload any, opts ...Option) *Client {
	return &Client{
		req:      Request{URL: apiURL, Payload: payload},
		settings: newSettings(opts),
	}
}

// Request returns the request this client sends.
func (c *Client) Request() Request {
	return c.req
}

// Send POSTs the JSON encoded payload and returns the response body as text.
//
// The API key is validated before anything is sent. A 401 response yields an
// error matching [ErrUnauthorized]; any other failure, including other non-2xx
// statuses, yields an error matching [ErrConnection] that wraps the cause.
// Exactly one attempt is made.
func (c *Client) Send(ctx context.Context) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.do(ctx, c.req, false)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", connectionError(err)
	}
	return string(body), nil
}

// do builds and executes one POST. On success the caller owns resp.Body.
func (s *settings) do(ctx context.Context, req Request, eventStream bool) (*http.Response, error) {
	headers, err := BuildHeaders(s.apiKey, eventStream)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := runtime.JSONProducer().Produce(&body, req.Payload); err != nil {
		return nil, newError(CodeBadRequest, "failed to encode workflow payload", 0, err)
	}
	// The producer terminates the document with a newline; the body is the bare encoding.
	body.Truncate(len(bytes.TrimSuffix(body.Bytes(), []byte("\n"))))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, &body)
	if err != nil {
		return nil, newError(CodeBadRequest, "failed to create request", 0, err)
	}
	httpReq.Header = headers
	if s.userAgent != "" {
		httpReq.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, connectionError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, statusError(resp)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return newError(CodeUnauthorized, unauthorizedMessage, resp.StatusCode, nil)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	cause := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
	e := connectionError(cause)
	e.Status = resp.StatusCode
	return e
}

const unauthorizedMessage = "Key is invalid, please refer to " + KeyPortalURL + " to get the API key. " +
	"If you have the key, please click the 'BizyAir Key' button at the bottom right to set the key"

func connectionError(cause error) *Error {
	return newError(CodeConnectionFailed,
		fmt.Sprintf("failed to connect to the server, if you have no key, get one from %s", KeyPortalURL),
		0, cause)
}
