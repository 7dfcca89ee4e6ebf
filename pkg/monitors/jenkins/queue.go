package jenkins

import (
	"context"

	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

func (m *Monitor) queueMetrics(ctx context.Context, ms *types.MetricSet) {
	queue := m.client.Get(ctx, queueEndpoint)
	size := int64(queue.Get("items").Len())

	ms.Add(queueSize, size)
	logger.WithField("section", "queue").Debugf("queue size %d", size)
}
