package bizyair

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/validate"
)

const (
	// KeyPrefix is the literal prefix every BizyAir API key starts with.
	KeyPrefix = "sk-"

	// KeyPortalURL is where users obtain an API key.
	KeyPortalURL = "https://cloud.siliconflow.cn"

	eventStreamMime = "text/event-stream"
)

// BuildHeaders validates apiKey and returns the headers for a workflow request.
//
// The Accept header is "application/json" for a synchronous call and
// "text/event-stream" when eventStream is true. An empty apiKey counts as
// missing. Both a missing key and a key without the [KeyPrefix] fail with
// an error matching [ErrInvalidCredential].
//
//	h, err := bizyair.BuildHeaders("sk-xxxx", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(h.Get("Accept")) // text/event-stream
func BuildHeaders(apiKey string, eventStream bool) (http.Header, error) {
	if verr := validate.RequiredString("api_key", "header", apiKey); verr != nil {
		return nil, newError(CodeInvalidCredential, credentialMessage(apiKey), 0, verr)
	}
	if !strings.HasPrefix(apiKey, KeyPrefix) {
		return nil, newError(CodeInvalidCredential, credentialMessage(apiKey), 0, nil)
	}

	h := make(http.Header, 3)
	h.Set(runtime.HeaderAccept, runtime.JSONMime)
	h.Set(runtime.HeaderContentType, runtime.JSONMime)
	h.Set("Authorization", "Bearer "+apiKey)
	if eventStream {
		h.Set(runtime.HeaderAccept, eventStreamMime)
	}
	return h, nil
}

// credentialMessage never echoes more than the key prefix.
func credentialMessage(apiKey string) string {
	shown := "<empty>"
	if apiKey != "" {
		shown = maskKey(apiKey)
	}
	return fmt.Sprintf("API key is not set or malformed (got %s). Please provide a valid API key (from %s)",
		shown, KeyPortalURL)
}

func maskKey(apiKey string) string {
	if len(apiKey) <= len(KeyPrefix) {
		return fmt.Sprintf("%q", apiKey)
	}
	return fmt.Sprintf("%q", apiKey[:len(KeyPrefix)]+"***")
}
