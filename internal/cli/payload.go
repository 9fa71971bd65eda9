package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// readPayload returns the workflow JSON from --payload or --payload-file.
// With neither flag the workflow is an empty object.
func readPayload(inline, file string) (json.RawMessage, error) {
	if inline != "" && file != "" {
		return nil, errors.New("--payload and --payload-file are mutually exclusive")
	}

	data := []byte(inline)
	if file != "" {
		var err error
		data, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading payload: %w", err)
		}
	}
	if len(data) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(data) {
		return nil, errors.New("payload is not valid JSON")
	}
	return json.RawMessage(data), nil
}
