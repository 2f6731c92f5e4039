// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across components.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps how much of a response body GetJSON will read.
var MaxBodyBytes int64 = 8 << 20

// StatusError reports a response whose status code was not 200.
type StatusError struct {
	StatusCode int
	// Body holds the first bytes of the response body, if any.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// GetJSON executes req with client and decodes a 200 response body into v.
//
// Any other status code yields a *StatusError carrying a short excerpt of the
// body. The request is bound to ctx. The body is always drained and closed.
func GetJSON(ctx context.Context, client *http.Client, req *http.Request, v any) error {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
		resp.Body.Close()
	}()

	body := io.LimitReader(resp.Body, MaxBodyBytes)

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(body, 256))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(excerpt)}
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
