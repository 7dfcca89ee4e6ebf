package jenkins

import (
	"context"

	log "github.com/sirupsen/logrus"

	jc "github.com/signalfx/jenkins-to-graphite/pkg/monitors/jenkins/client"
	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

// executorCounts reads the executor summary present on both the computer
// and label resources.  free is not clamped at zero.
func executorCounts(resp jc.Value) (total, busy, free int64) {
	total = resp.Get("totalExecutors").Int()
	busy = resp.Get("busyExecutors").Int()
	return total, busy, total - busy
}

// computerMetrics reports executor and node availability from a single
// query of the computer resource.
func (m *Monitor) computerMetrics(ctx context.Context, ms *types.MetricSet) {
	computer := m.client.Get(ctx, computerEndpoint)

	total, busy, free := executorCounts(computer)
	ms.Add(executorsTotal, total)
	ms.Add(executorsBusy, busy)
	ms.Add(executorsFree, free)

	nodes := computer.Get("computer").Items()
	var offline int64
	for _, node := range nodes {
		if node.Get("offline").Truthy() {
			offline++
		}
	}
	nodeCount := int64(len(nodes))
	ms.Add(nodesTotal, nodeCount)
	ms.Add(nodesOffline, offline)
	ms.Add(nodesOnline, nodeCount-offline)

	logger.WithFields(log.Fields{
		"section":        "computer",
		"executorsTotal": total,
		"executorsBusy":  busy,
		"nodesTotal":     nodeCount,
		"nodesOffline":   offline,
	}).Debug("Derived executor and node metrics")
}
