// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperwatch/pkg/types"
)

func TestGet_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-bibtex", r.Header.Get("Accept"))
		w.Write([]byte("payload"))
	}))
	defer ts.Close()

	h := http.Header{}
	h.Set("Accept", "application/x-bibtex")
	body, err := Get(context.Background(), ts.Client(), ts.URL, h)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

func TestGet_NonOKIsNetworkErrorWithoutRetry(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, nil)
	require.Error(t, err)

	var netErr *types.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusTooManyRequests, netErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := Get(context.Background(), nil, url, nil)
	var netErr *types.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Zero(t, netErr.StatusCode)
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, ts.Client(), ts.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
