package jenkins

import (
	"context"
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

// labelMetrics reports the capacity of the nodes carrying label.  The label
// is queried on its own, so a failed query only zeroes this label.
func (m *Monitor) labelMetrics(ctx context.Context, ms *types.MetricSet, label string) {
	resp := m.client.Get(ctx, fmt.Sprintf(labelEndpoint, url.PathEscape(label)))

	prefix := "labels." + label + "."
	total, busy, free := executorCounts(resp)

	ms.Add(prefix+labelTiedJobs, int64(resp.Get("tiedJobs").Len()))
	ms.Add(prefix+labelNodesTotal, int64(resp.Get("nodes").Len()))
	ms.Add(prefix+labelExecutorsTotal, total)
	ms.Add(prefix+labelExecutorsBusy, busy)
	ms.Add(prefix+labelExecutorsFree, free)

	logger.WithFields(log.Fields{
		"section":        "labels",
		"label":          label,
		"executorsTotal": total,
		"executorsBusy":  busy,
	}).Debug("Derived label metrics")
}
