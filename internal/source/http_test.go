package source

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

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validPayload))
	}))
	defer srv.Close()

	f, err := NewHTTP(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, f.Left, 2)
	assert.Len(t, f.Right, 3)
}

func TestHTTPFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, time.Second).Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrTransport), "got %v", err)
}

func TestHTTPFetchMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, time.Second).Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}

func TestHTTPFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTP(url, 200*time.Millisecond).Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrTransport), "got %v", err)
}
