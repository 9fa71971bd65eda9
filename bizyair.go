// Package bizyair is a minimal Go client for the BizyAir workflow API.
//
// A workflow is any JSON-encodable value. It is POSTed to a caller-supplied
// endpoint either as a single request/response call ([Client]) or as a
// long-lived server-sent event stream ([StreamClient]).
//
// # Installation
//
//	go get github.com/bizyair/bizyair-go
//
// # Synchronous Calls
//
//	client := bizyair.NewClient("https://api.example.com/supernode/flux",
//	    map[string]any{"prompt": "a cat"},
//	    bizyair.WithAPIKey("sk-..."),
//	)
//	body, err := client.Send(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(body)
//
// # Streaming Calls
//
//	stream, err := bizyair.OpenStream(ctx, url, workflow, bizyair.WithAPIKey(key))
//	if err != nil {
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
// Breaking out of the loop closes the connection immediately.
//
// # Error Handling
//
// Every error is an [*Error]. Three codes matter to callers:
//
//   - [ErrInvalidCredential]: the API key is missing or does not start
//     with "sk-". Nothing was sent.
//   - [ErrUnauthorized]: the server answered 401.
//   - [ErrConnection]: any other failure. The original cause is wrapped.
//
// Nothing is retried and nothing is logged.
//
// # Timeouts
//
// The client enforces no timeout of its own. Use a context deadline, or
// [WithTimeout] for synchronous calls.
package bizyair
