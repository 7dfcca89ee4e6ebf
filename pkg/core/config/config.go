// Package config holds the process configuration of the agent.  Values come
// from command line flags; defaults are declared with `default` struct tags
// and checked with `validate` tags before anything talks to the network.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"

	"github.com/signalfx/jenkins-to-graphite/pkg/core/common/httpclient"
)

// Config is the whole configuration of one run
type Config struct {
	// Base url of the Jenkins server, e.g. http://jenkins.example.com
	JenkinsURL string `flag:"jenkins-url" validate:"required,url"`
	// How to reach Jenkins: credentials, timeout and TLS options
	httpclient.HTTPConfig

	// Host name of the server running the carbon daemon
	GraphiteServer string `flag:"graphite-server"`
	// Port of the carbon plaintext listener
	GraphitePort int `flag:"graphite-port" default:"2003" validate:"min=1,max=65535"`
	// Namespace every metric name is put under
	GraphitePrefix string `flag:"graphite-prefix" default:"jenkins"`
	// Timeout for connecting to carbon and writing the batch
	DialTimeout time.Duration `flag:"dial-timeout" default:"10s"`

	// Labels to report per-label capacity for
	Labels []string `flag:"label" validate:"dive,required"`
	// View whose jobs are classified by build status
	JobsView string `flag:"jobs-view"`

	// Print the batch to stdout instead of sending it
	DryRun bool `flag:"dry-run"`

	Logging LogConfig
}

// Initialize fills in defaults and validates the config
func (c *Config) Initialize() error {
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(err, "config defaults are wrong types")
	}

	c.JenkinsURL = strings.TrimRight(strings.TrimSpace(c.JenkinsURL), "/")
	c.GraphiteServer = strings.TrimSpace(c.GraphiteServer)

	return c.Validate()
}

// Validate checks the struct tags and the rules that span several fields
func (c *Config) Validate() error {
	var msgs []string
	if err := ValidateStruct(c); err != nil {
		msgs = append(msgs, err.Error())
	}

	if c.GraphiteServer == "" && !c.DryRun {
		msgs = append(msgs, fmt.Sprintf("Validation error in field '%s': required", "graphite-server"))
	}

	if (c.ClientCertPath == "") != (c.ClientKeyPath == "") {
		msgs = append(msgs, "client-cert and client-key must be given together")
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}
