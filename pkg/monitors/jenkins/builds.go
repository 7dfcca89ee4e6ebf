package jenkins

import (
	"context"
	"fmt"

	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

const (
	minuteWindowSeconds = 60
	hourWindowSeconds   = 3600
)

func (m *Monitor) buildMetrics(ctx context.Context, ms *types.MetricSet) {
	ms.Add(buildsStartedLastMinute, m.startedBuilds(ctx, minuteWindowSeconds))
	ms.Add(buildsStartedLastHour, m.startedBuilds(ctx, hourWindowSeconds))
}

// startedBuilds counts the build start events of the last window seconds.
// The clock is read on every call, so the two windows of a pass don't share
// the same end.
func (m *Monitor) startedBuilds(ctx context.Context, window int64) int64 {
	now := m.now().Unix()
	path := fmt.Sprintf(timelineEndpoint, (now-window)*1000, now*1000)

	started := int64(m.client.GetRaw(ctx, path).Get("events").Len())
	logger.WithField("section", "builds").Debugf("%d builds started in the last %ds", started, window)
	return started
}
