package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// maxErrorBody caps how much of an error response is kept for logs.
const maxErrorBody = 512

// APIError is a non-2xx response from a provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// Unwrap classifies the response against the domain sentinels.
func (e *APIError) Unwrap() []error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return []error{domain.ErrTransport, domain.ErrAuthInvalid}
	case http.StatusTooManyRequests:
		return []error{domain.ErrTransport, domain.ErrRateLimited}
	default:
		return []error{domain.ErrTransport}
	}
}

// IsAPIStatus reports whether err is an APIError with the given status code.
func IsAPIStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Request describes one outbound REST call.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	// Form is sent as application/x-www-form-urlencoded when non-nil.
	Form   url.Values
	Header http.Header
}

// Do sends r and decodes a JSON object from a 2xx response.
// Transport failures wrap domain.ErrTransport; non-2xx responses
// return *APIError. An empty 2xx body decodes to an empty map.
func Do(ctx context.Context, client *http.Client, r Request) (map[string]any, error) {
	target := r.URL
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Form != nil {
		body = strings.NewReader(r.Form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, r.Method, r.URL, transportCause(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrTransport, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrTransport, err)
	}
	return out, nil
}

// transportCause strips the request URL, query included, from a client error.
func transportCause(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

// Items extracts the list stored under key in a decoded response.
// Non-object entries are skipped.
func Items(body map[string]any, key string) []domain.Resource {
	raw, _ := body[key].([]any)
	items := make([]domain.Resource, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			items = append(items, domain.Resource(m))
		}
	}
	return items
}

// ToResource converts a typed API value into a generic resource via JSON.
func ToResource(v any) (domain.Resource, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding resource: %w", err)
	}
	var out domain.Resource
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding resource: %w", err)
	}
	return out, nil
}
