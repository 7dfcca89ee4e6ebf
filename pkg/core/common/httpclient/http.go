package httpclient

import (
	"crypto/tls"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	"github.com/signalfx/jenkins-to-graphite/pkg/core/common/auth"
)

// HTTPConfig holds everything needed to build the http.Client used to talk
// to Jenkins.
type HTTPConfig struct {
	// HTTP timeout duration for the whole request, including reading the
	// body.
	HTTPTimeout time.Duration `flag:"http-timeout" default:"10s"`

	// Basic Auth username to use on each request, if any.
	Username string `flag:"jenkins-user"`
	// Basic Auth password to use on each request, if any.
	Password string `flag:"jenkins-password" neverLog:"true"`

	// If true, the server's TLS cert will not be verified.
	SkipVerify bool `flag:"skip-verify"`

	// Path to the CA cert that has signed the TLS cert of the server
	CACertPath string `flag:"ca-cert" validate:"omitempty,file"`
	// Path to the client TLS cert to use for TLS required connections
	ClientCertPath string `flag:"client-cert" validate:"omitempty,file"`
	// Path to the client TLS key to use for TLS required connections
	ClientKeyPath string `flag:"client-key" validate:"omitempty,file"`
}

// Credentials returns the basic auth credentials, or nil if no username is
// configured.  An empty password is allowed.
func (h *HTTPConfig) Credentials() *auth.Credentials {
	if h.Username == "" {
		return nil
	}
	return &auth.Credentials{Username: h.Username, Password: h.Password}
}

func (h *HTTPConfig) usesTLSOptions() bool {
	return h.SkipVerify || h.CACertPath != "" || h.ClientCertPath != ""
}

// Build returns a configured http.Client
func (h *HTTPConfig) Build() (*http.Client, error) {
	return h.BuildCustomizeTransport(nil)
}

// BuildCustomizeTransport returns a configured http.Client but applies the
// provided cb function after configuring it to apply any custom
// configuration to the underlying HTTPTransport.
func (h *HTTPConfig) BuildCustomizeTransport(cb func(t *http.Transport)) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if h.usesTLSOptions() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: h.SkipVerify, // nolint: gosec
		}
		if _, err := auth.TLSConfig(transport.TLSClientConfig, h.CACertPath, h.ClientCertPath, h.ClientKeyPath); err != nil {
			return nil, err
		}
	}

	// Customize on underlying transport instance before possibly wrapping in auth below.
	if cb != nil {
		cb(transport)
	}

	var roundTripper http.RoundTripper = transport

	if creds := h.Credentials(); creds != nil {
		roundTripper = &auth.TransportWithBasicAuth{
			RoundTripper: roundTripper,
			Credentials:  *creds,
		}
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "could not create cookie jar")
	}

	return &http.Client{
		Timeout:   h.HTTPTimeout,
		Transport: roundTripper,
		Jar:       jar,
	}, nil
}
