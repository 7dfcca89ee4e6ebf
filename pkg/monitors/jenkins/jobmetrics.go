package jenkins

import (
	"context"
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

// jobHealth is the classification of the jobs of a view by the color of
// their last build
type jobHealth struct {
	total int64
	ok    int64
	fail  int64
	warn  int64
}

func (m *Monitor) jobMetrics(ctx context.Context, ms *types.MetricSet, view string) {
	resp := m.client.Get(ctx, fmt.Sprintf(viewEndpoint, url.PathEscape(view)))

	var health jobHealth
	for _, job := range resp.Get("jobs").Items() {
		health.total++
		switch job.Get("color").Str() {
		case colorOK:
			health.ok++
		case colorFail:
			health.fail++
		case colorWarn:
			health.warn++
		}
	}

	ms.Add(jobsTotal, health.total)
	ms.Add(jobsOK, health.ok)
	ms.Add(jobsFail, health.fail)
	ms.Add(jobsWarn, health.warn)

	logger.WithFields(log.Fields{
		"section": "jobs",
		"view":    view,
		"total":   health.total,
		"ok":      health.ok,
		"fail":    health.fail,
		"warn":    health.warn,
	}).Debug("Derived job metrics")
}
