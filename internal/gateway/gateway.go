// Package gateway wraps the access-control backend's HTTP API behind typed
// fetch methods. It attaches auth, unwraps response envelopes, hands raw
// payloads to the normalize package, and converts every transport-level
// failure into a *TransportError so callers receive a result, never a panic
// or an untyped error.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/aegisgate/aegis/internal/model"
)

// TokenProvider returns the current bearer token, or "" when the session is
// unauthenticated. An empty token is not an error; the header is simply
// omitted.
type TokenProvider func() string

// Config carries the constructor parameters for a Gateway. There is no
// package-level client state; every dependency is injected here.
type Config struct {
	// BaseURL is the API root including any path prefix, e.g.
	// "http://localhost:5000/api".
	BaseURL string
	// Timeout bounds each request. Zero means model.DefaultRequestTimeout.
	Timeout time.Duration
	Token   TokenProvider
	Logger  zerolog.Logger
}

// Gateway is the data-gateway layer between the UI and the backend.
type Gateway struct {
	http  *resty.Client
	token TokenProvider
	log   zerolog.Logger
}

// New builds a Gateway from the given config.
func New(cfg Config) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = model.DefaultRequestTimeout
	}

	r := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Gateway{
		http:  r,
		token: cfg.Token,
		log:   cfg.Logger.With().Str("component", "gateway").Logger(),
	}
}

// TransportError is the single error kind the gateway surfaces: network
// failure, timeout, non-2xx status, or a malformed body. Callers do not
// distinguish a timeout from a refusal; both degrade the same way.
type TransportError struct {
	Op         string // the operation that failed, e.g. "fetch cameras"
	StatusCode int    // 0 when the request never completed
	Err        error  // original cause, nil for bare status failures
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// request builds a request with context and auth attached.
func (g *Gateway) request(ctx context.Context) *resty.Request {
	req := g.http.R().SetContext(ctx)
	if g.token != nil {
		if tok := g.token(); tok != "" {
			req.SetHeader("Authorization", "Bearer "+tok)
		}
	}
	return req
}

// getJSON performs a GET and decodes the body into a generic JSON value.
func (g *Gateway) getJSON(ctx context.Context, op, path string, query map[string]string) (any, error) {
	req := g.request(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		g.log.Warn().Err(err).Str("path", path).Msg("request failed")
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.IsError() {
		g.log.Warn().Int("status", resp.StatusCode()).Str("path", path).Msg("backend error status")
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode()}
	}

	var body any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("malformed body: %w", err)}
	}
	return body, nil
}

// unwrapCollection extracts the payload array from a response body that may
// be a bare array, an envelope wrapping an array, or an envelope wrapping a
// map keyed by id. Map entries become array elements (order undefined) and
// the map key backfills a missing "id" field so nothing is lost.
func unwrapCollection(body any, resource string) ([]any, bool) {
	switch v := body.(type) {
	case []any:
		return v, true
	case map[string]any:
		inner, ok := v[resource]
		if !ok {
			return nil, false
		}
		switch payload := inner.(type) {
		case []any:
			return payload, true
		case map[string]any:
			out := make([]any, 0, len(payload))
			for key, item := range payload {
				if obj, ok := item.(map[string]any); ok {
					if _, has := obj["id"]; !has {
						withID := make(map[string]any, len(obj)+1)
						for k, val := range obj {
							withID[k] = val
						}
						withID["id"] = key
						out = append(out, withID)
						continue
					}
				}
				out = append(out, item)
			}
			return out, true
		case nil:
			return []any{}, true
		}
	}
	return nil, false
}

// collection fetches path and unwraps the named resource's payload array.
func (g *Gateway) collection(ctx context.Context, op, path, resource string, query map[string]string) ([]any, error) {
	body, err := g.getJSON(ctx, op, path, query)
	if err != nil {
		return nil, err
	}
	raw, ok := unwrapCollection(body, resource)
	if !ok {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("malformed envelope: no %s payload", resource)}
	}
	return raw, nil
}

// object fetches path and requires an object body.
func (g *Gateway) object(ctx context.Context, op, path string) (map[string]any, error) {
	body, err := g.getJSON(ctx, op, path, nil)
	if err != nil {
		return nil, err
	}
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("malformed body: expected object, got %T", body)}
	}
	return obj, nil
}
