package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxResponseSize bounds how much of a token endpoint response is read.
const maxResponseSize = 1 << 20

var ErrUnparseableBody = errors.New("unable to parse response body")

// ParseResponse reads and closes the response body and decodes it.
// Form-encoded bodies are decoded as url values (first value per key);
// everything else is decoded as a JSON object. A body that cannot be decoded
// is an error only when the server claims it is JSON; otherwise the parsed
// mapping is nil and the raw body is still returned for error reporting.
func ParseResponse(resp *http.Response) (map[string]any, []byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))

	if strings.Contains(contentType, "urlencoded") {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, body, fmt.Errorf("%w: %v", ErrUnparseableBody, err)
		}
		parsed := make(map[string]any, len(values))
		for k := range values {
			parsed[k] = values.Get(k)
		}
		return parsed, body, nil
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, body, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		if strings.Contains(contentType, "json") {
			return nil, body, fmt.Errorf("%w: %v", ErrUnparseableBody, err)
		}
		return nil, body, nil
	}
	return parsed, body, nil
}
