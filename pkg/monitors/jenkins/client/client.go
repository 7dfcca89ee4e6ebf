package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/jenkins-to-graphite/pkg/core/common/httpclient"
)

const apiSuffix = "/api/json"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

var logger = log.WithFields(log.Fields{"component": "jenkins-client"})

// JenkinsClient talks to the Jenkins remote access API.  Failed queries are
// logged and come back as an empty Value, they never surface as errors.
type JenkinsClient struct {
	BaseURL string

	build      func() (*http.Client, error)
	once       sync.Once
	httpClient *http.Client
	buildErr   error
}

// NewJenkinsClient makes a client for the Jenkins instance at baseURL.  The
// underlying http.Client is built from conf on the first request and reused
// for every request after that, so session cookies handed out by Jenkins are
// sent back.
func NewJenkinsClient(baseURL string, conf *httpclient.HTTPConfig) *JenkinsClient {
	return &JenkinsClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		build:   conf.Build,
	}
}

// NewJenkinsClientWithHTTPClient makes a client that uses the given
// http.Client as-is
func NewJenkinsClientWithHTTPClient(baseURL string, client *http.Client) *JenkinsClient {
	return &JenkinsClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		build: func() (*http.Client, error) {
			return client, nil
		},
	}
}

// Get fetches the standard JSON API of the resource at path, i.e.
// {path}/api/json
func (c *JenkinsClient) Get(ctx context.Context, path string) Value {
	return c.GetRaw(ctx, strings.TrimRight(path, "/")+apiSuffix)
}

// GetRaw fetches path relative to the base URL and decodes the body as JSON.
// path may contain a query string.
func (c *JenkinsClient) GetRaw(ctx context.Context, path string) Value {
	v, err := c.FetchJSON(ctx, path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Warn("Unable to get jenkins response")
		return EmptyValue()
	}
	return v
}

// URL joins path onto the base URL with exactly one separator
func (c *JenkinsClient) URL(path string) string {
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}

// FetchJSON builds the URL of the endpoint, fetches it and decodes the json
// body
func (c *JenkinsClient) FetchJSON(ctx context.Context, path string) (Value, error) {
	client, err := c.client()
	if err != nil {
		return Value{}, errors.Wrap(err, "could not build http client")
	}

	url := c.URL(path)
	res, err := fetchResponse(ctx, url, client)
	if err != nil {
		return Value{}, err
	}
	defer res.Close()

	var raw interface{}
	if err := jsonAPI.NewDecoder(res).Decode(&raw); err != nil {
		return Value{}, errors.Wrapf(err, "could not decode response of url %s", url)
	}

	if logger.Logger.IsLevelEnabled(log.DebugLevel) {
		logger.WithField("url", url).Debugf("Got response: %# v", pretty.Formatter(raw))
	}

	return NewValue(raw), nil
}

func (c *JenkinsClient) client() (*http.Client, error) {
	c.once.Do(func() {
		c.httpClient, c.buildErr = c.build()
	})
	return c.httpClient, c.buildErr
}

// fetchResponse takes a URL and HTTP client and returns a reader
// caller should always close the reader
func fetchResponse(ctx context.Context, url string, c *http.Client) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build request for url %s", url)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get url %s", url)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		res.Body.Close()
		return nil, errors.Errorf("received status code that's not 200: %s , url: %s , body: %s", res.Status, url, strings.TrimSpace(string(body)))
	}
	return res.Body, nil
}
