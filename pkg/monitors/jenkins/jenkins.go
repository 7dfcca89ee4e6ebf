package jenkins

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	jc "github.com/signalfx/jenkins-to-graphite/pkg/monitors/jenkins/client"
	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

// StatusFetcher is the part of the Jenkins client the monitor needs.  Both
// methods return an empty value when the query fails.
type StatusFetcher interface {
	Get(ctx context.Context, path string) jc.Value
	GetRaw(ctx context.Context, path string) jc.Value
}

// Config for this monitor
type Config struct {
	// Labels to report executor and tied job counts for
	Labels []string
	// Name of the view whose jobs are classified by build color
	JobsView string
}

// Monitor derives the Jenkins gauges from one round of API queries
type Monitor struct {
	client StatusFetcher
	conf   Config
	now    func() time.Time
}

var logger = log.WithFields(log.Fields{"monitorType": monitorType})

// New makes a monitor that queries Jenkins through client
func New(client StatusFetcher, conf Config) *Monitor {
	return &Monitor{
		client: client,
		conf:   conf,
		now:    time.Now,
	}
}

// Collect runs one pass and adds every derived metric to ms.  The endpoints
// are queried one after the other; a failed query only zeroes the metrics
// that depend on it.
func (m *Monitor) Collect(ctx context.Context, ms *types.MetricSet) {
	m.queueMetrics(ctx, ms)
	m.buildMetrics(ctx, ms)
	m.computerMetrics(ctx, ms)

	for _, label := range m.conf.Labels {
		m.labelMetrics(ctx, ms, label)
	}

	if m.conf.JobsView != "" {
		m.jobMetrics(ctx, ms, m.conf.JobsView)
	}

	logger.WithField("metrics", ms.Len()).Debug("Collected jenkins metrics")
}
