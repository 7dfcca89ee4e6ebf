// Package core hooks up the Jenkins client, the monitor and the Graphite
// writer for a single collection pass.
package core

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/signalfx/jenkins-to-graphite/pkg/core/config"
	"github.com/signalfx/jenkins-to-graphite/pkg/core/writer/graphite"
	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/jenkins"
	jc "github.com/signalfx/jenkins-to-graphite/pkg/monitors/jenkins/client"
	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

// Agent runs collection passes from an initialized config
type Agent struct {
	conf    *config.Config
	monitor *jenkins.Monitor
	writer  *graphite.Writer
}

// NewAgent wires up an agent.  dryRunOut is where batches go when the config
// asks for a dry run.
func NewAgent(conf *config.Config, dryRunOut io.Writer) *Agent {
	client := jc.NewJenkinsClient(conf.JenkinsURL, &conf.HTTPConfig)

	var writer *graphite.Writer
	if conf.DryRun {
		writer = graphite.NewDryRun(dryRunOut)
	} else {
		writer = graphite.New(conf.GraphiteServer, conf.GraphitePort, conf.DialTimeout)
	}

	return &Agent{
		conf: conf,
		monitor: jenkins.New(client, jenkins.Config{
			Labels:   conf.Labels,
			JobsView: conf.JobsView,
		}),
		writer: writer,
	}
}

// RunPass queries Jenkins once and sends the resulting batch.  It returns
// whether the batch was delivered; a failed delivery is not retried.
func (a *Agent) RunPass(ctx context.Context) bool {
	log.WithFields(config.LogFields(a.conf)).Debug("Starting collection pass")

	ms := types.NewMetricSet(a.conf.GraphitePrefix)
	a.monitor.Collect(ctx, ms)

	return a.writer.Send(ctx, ms)
}
