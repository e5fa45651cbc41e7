// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// MaxBodyBytes caps how much of a response body Get reads.
var MaxBodyBytes int64 = 32 << 20

// Get issues a single GET request and returns the response body. Transport
// failures and non-200 responses are returned as *types.NetworkError.
// There is no retry: the caller reports the failure and moves on.
func Get(ctx context.Context, client *http.Client, rawURL string, header http.Header) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &types.NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &types.NetworkError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &types.NetworkError{URL: rawURL, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}
