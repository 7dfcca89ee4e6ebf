package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTransportWithBasicAuth(t *testing.T) {
	var seen *http.Request
	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	tr := &TransportWithBasicAuth{
		RoundTripper: base,
		Credentials:  Credentials{Username: "bob", Password: ""},
	}

	t.Run("adds the header to a copy of the request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://jenkins/queue/api/json", nil)
		_, err := tr.RoundTrip(req)
		require.NoError(t, err)

		user, pass, ok := seen.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "bob", user)
		assert.Equal(t, "", pass)
		assert.Equal(t, "", req.Header.Get("Authorization"))
	})

	t.Run("leaves an existing header alone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://jenkins/queue/api/json", nil)
		req.Header.Set("Authorization", "Bearer token")
		_, err := tr.RoundTrip(req)
		require.NoError(t, err)

		assert.Equal(t, "Bearer token", seen.Header.Get("Authorization"))
	})
}
