package shared

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 1 << 20

// DecodeBody decodes a JSON object from the request body.
// Numbers are kept as json.Number so integers stay distinguishable from
// floats. A JSON null yields a nil map.
func DecodeBody(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON body: trailing data")
	}
	return body, nil
}
