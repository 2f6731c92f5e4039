// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetJSON_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"cat","count":3}`))
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	var got payload
	require.NoError(t, GetJSON(context.Background(), ts.Client(), req, &got))
	assert.Equal(t, payload{Name: "cat", Count: 3}, got)
}

func TestGetJSON_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("[ERROR 400] Invalid or missing API key"))
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	var got payload
	err = GetJSON(context.Background(), ts.Client(), req, &got)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Contains(t, se.Body, "Invalid or missing API key")
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestGetJSON_StatusErrorWithoutBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	err = GetJSON(context.Background(), ts.Client(), req, &payload{})
	assert.EqualError(t, err, "HTTP 500")
}

func TestGetJSON_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"name":`))
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	err = GetJSON(context.Background(), ts.Client(), req, &payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestGetJSON_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	err = GetJSON(ctx, ts.Client(), req, &payload{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// endlessBody yields bytes forever and counts how many were read.
type endlessBody struct {
	read int64
}

func (b *endlessBody) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	b.read += int64(len(p))
	return len(p), nil
}

func (b *endlessBody) Close() error { return nil }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestGetJSON_DrainIsBounded(t *testing.T) {
	old := MaxBodyBytes
	MaxBodyBytes = 1 << 10
	defer func() { MaxBodyBytes = old }()

	for _, status := range []int{http.StatusOK, http.StatusBadGateway} {
		body := &endlessBody{}
		client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: status, Body: body, Header: http.Header{}, Request: r}, nil
		})}

		req, err := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
		require.NoError(t, err)

		err = GetJSON(context.Background(), client, req, &payload{})
		require.Error(t, err)
		// Decoding and draining each stop at MaxBodyBytes.
		assert.LessOrEqual(t, body.read, 2*MaxBodyBytes, "status %d", status)
	}
}
