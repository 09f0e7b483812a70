// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxivtools/a2p/internal/config"
)

var ctx = context.Background()

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient()
	c.BaseURL = srv.URL
	// Pin the attempt budget so an ambient config file cannot skew tests.
	c.MaxAttempts = defaultMaxAttempts
	return c
}

func TestNewClientRetriesFromConfig(t *testing.T) {
	abs, err := filepath.Abs(filepath.Join("testdata", "a2p.yaml"))
	require.NoError(t, err)
	t.Setenv("A2P_CFG", abs)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	assert.Equal(t, 5, NewClient().MaxAttempts)
}

func TestNewClientRetriesDefault(t *testing.T) {
	t.Setenv("A2P_CFG", filepath.Join(t.TempDir(), "missing.yaml"))
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	assert.Equal(t, defaultMaxAttempts, NewClient().MaxAttempts)
}

func TestSourceAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/format/2303.08774":
			_, _ = w.Write([]byte(`<a href="/e-print/2303.08774">Download source</a>`))
		case "/format/1234.00000":
			_, _ = w.Write([]byte(`<p>PDF only</p>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	c := newTestClient(srv)

	ok, err := c.SourceAvailable(ctx, "2303.08774")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SourceAvailable(ctx, "1234.00000")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.SourceAvailable(ctx, "missing")
	assert.Error(t, err)
}

func TestFetchSource(t *testing.T) {
	payload := []byte("archive-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/e-print/2303.08774", r.URL.Path)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	data, err := newTestClient(srv).FetchSource(ctx, "2303.08774")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := newTestClient(srv).get(ctx, "/e-print/x")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).get(ctx, "/e-print/x")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
