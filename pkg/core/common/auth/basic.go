package auth

import (
	"net/http"
)

// Credentials is a basic auth username/password pair
type Credentials struct {
	Username string
	Password string
}

// TransportWithBasicAuth adds the basic auth header to every request that
// doesn't already carry an Authorization header.
type TransportWithBasicAuth struct {
	http.RoundTripper
	Credentials
}

var _ http.RoundTripper = &TransportWithBasicAuth{}

// RoundTrip implements http.RoundTripper.  The request is cloned before the
// header is set.
func (t *TransportWithBasicAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") != "" {
		return t.RoundTripper.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.Username, t.Password)
	return t.RoundTripper.RoundTrip(req)
}
