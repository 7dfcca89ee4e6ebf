package types

import (
	"testing"

	"github.com/signalfx/golib/v3/datapoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricSetNames(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"jenkins", "queue.size", "jenkins.queue.size"},
		{"jenkins.", "queue.size", "jenkins.queue.size"},
		{"ci.jenkins...", "nodes.total", "ci.jenkins.nodes.total"},
		{"", "queue.size", "queue.size"},
		{"...", "queue.size", "queue.size"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.key, func(t *testing.T) {
			ms := NewMetricSet(tt.prefix)
			ms.Add(tt.key, 3)

			v, ok := ms.Value(tt.want)
			require.True(t, ok)
			assert.Equal(t, int64(3), v)
			assert.Equal(t, []string{tt.want}, ms.Names())
		})
	}
}

func TestMetricSetLastWriteWins(t *testing.T) {
	ms := NewMetricSet("jenkins")
	ms.Add("queue.size", 1)
	ms.Add("executors.total", 4)
	ms.Add("queue.size", 7)

	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, []string{"jenkins.queue.size", "jenkins.executors.total"}, ms.Names())

	v, ok := ms.Value("jenkins.queue.size")
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestMetricSetDatapoints(t *testing.T) {
	ms := NewMetricSet("jenkins")
	ms.Add("executors.free", -2)
	ms.Add("nodes.total", 5)

	dps := ms.Datapoints()
	require.Len(t, dps, 2)
	assert.Equal(t, "jenkins.executors.free", dps[0].Metric)
	assert.Equal(t, datapoint.Gauge, dps[0].MetricType)
	assert.Equal(t, "-2", dps[0].Value.String())
	assert.Equal(t, "5", dps[1].Value.String())

	t.Run("returned datapoints are copies", func(t *testing.T) {
		dps[1].Metric = "changed"
		dps[1].Value = datapoint.NewIntValue(100)

		v, ok := ms.Value("jenkins.nodes.total")
		require.True(t, ok)
		assert.Equal(t, int64(5), v)
		assert.Equal(t, "jenkins.nodes.total", ms.Datapoints()[1].Metric)
	})
}

func TestMetricSetMissing(t *testing.T) {
	ms := NewMetricSet("jenkins")
	_, ok := ms.Value("jenkins.queue.size")
	assert.False(t, ok)
	assert.Equal(t, 0, ms.Len())
	assert.Empty(t, ms.Datapoints())
}
