package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := ShortCode()
		assert.Len(t, code, 15)
		assert.False(t, seen[code], "codes should not repeat")
		seen[code] = true
	}
}

func TestPostSurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"down"}`))
	}))
	defer srv.Close()

	_, err := Post(srv.URL, map[string]string{"a": "b"}, nil)
	require.Error(t, err)

	httpErr, ok := err.(*HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "down")
}

func TestPostDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id":"order_123"}`))
	}))
	defer srv.Close()

	resp, err := Post(srv.URL, map[string]string{"a": "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "order_123", resp["id"])
}

func TestPaginateResponse(t *testing.T) {
	res := PaginateResponse([]int{1, 2}, 25, 2, 10, "ok")
	assert.True(t, res.HasPrev)
	assert.True(t, res.HasNext)

	last := PaginateResponse([]int{1, 2}, 25, 3, 10, "ok")
	assert.False(t, last.HasNext)
}
