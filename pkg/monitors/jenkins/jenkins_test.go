package jenkins

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jc "github.com/signalfx/jenkins-to-graphite/pkg/monitors/jenkins/client"
	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

type timelineQuery struct {
	min int64
	max int64
}

// fakeFetcher serves canned documents keyed by the path passed to Get, and
// timeline documents keyed by window length in seconds.  Unknown paths act
// like failed queries.
type fakeFetcher struct {
	t         *testing.T
	docs      map[string]string
	timeline  map[int64]string
	requested []string
	timelines []timelineQuery
}

func (f *fakeFetcher) decode(doc string) jc.Value {
	var raw interface{}
	require.NoError(f.t, json.Unmarshal([]byte(doc), &raw))
	return jc.NewValue(raw)
}

func (f *fakeFetcher) Get(_ context.Context, path string) jc.Value {
	f.requested = append(f.requested, path)
	if doc, ok := f.docs[path]; ok {
		return f.decode(doc)
	}
	return jc.EmptyValue()
}

func (f *fakeFetcher) GetRaw(_ context.Context, path string) jc.Value {
	f.requested = append(f.requested, path)
	u, err := url.Parse(path)
	require.NoError(f.t, err)
	require.Equal(f.t, "view/All/timeline/data", u.Path)

	min, err := strconv.ParseInt(u.Query().Get("min"), 10, 64)
	require.NoError(f.t, err)
	max, err := strconv.ParseInt(u.Query().Get("max"), 10, 64)
	require.NoError(f.t, err)
	f.timelines = append(f.timelines, timelineQuery{min: min, max: max})

	if doc, ok := f.timeline[(max-min)/1000]; ok {
		return f.decode(doc)
	}
	return jc.EmptyValue()
}

func collect(t *testing.T, f *fakeFetcher, conf Config) *types.MetricSet {
	f.t = t
	m := New(f, conf)
	m.now = func() time.Time { return time.Unix(1700000000, 0) }

	ms := types.NewMetricSet("jenkins")
	m.Collect(context.Background(), ms)
	return ms
}

func requireMetric(t *testing.T, ms *types.MetricSet, name string, want int64) {
	t.Helper()
	v, ok := ms.Value("jenkins." + name)
	require.True(t, ok, "metric %s missing", name)
	assert.Equal(t, want, v, "metric %s", name)
}

func TestQueueSize(t *testing.T) {
	t.Run("counts queued items", func(t *testing.T) {
		ms := collect(t, &fakeFetcher{docs: map[string]string{
			"queue": `{"items":[{}, {}]}`,
		}}, Config{})
		requireMetric(t, ms, "queue.size", 2)
	})

	t.Run("failed query gives zero", func(t *testing.T) {
		ms := collect(t, &fakeFetcher{}, Config{})
		requireMetric(t, ms, "queue.size", 0)
	})
}

func TestStartedBuilds(t *testing.T) {
	f := &fakeFetcher{timeline: map[int64]string{
		60:   `{"events":[{"title":"a #1"}]}`,
		3600: `{"events":[{"title":"a #1"},{"title":"b #7"},{"title":"c #2"}]}`,
	}}
	ms := collect(t, f, Config{})

	requireMetric(t, ms, "builds.started_builds_last_minute", 1)
	requireMetric(t, ms, "builds.started_builds_last_hour", 3)

	require.Len(t, f.timelines, 2)
	assert.Equal(t, timelineQuery{min: (1700000000 - 60) * 1000, max: 1700000000 * 1000}, f.timelines[0])
	assert.Equal(t, timelineQuery{min: (1700000000 - 3600) * 1000, max: 1700000000 * 1000}, f.timelines[1])
}

func TestStartedBuildsReadClockPerWindow(t *testing.T) {
	f := &fakeFetcher{t: t}
	m := New(f, Config{})
	clock := int64(1700000000)
	m.now = func() time.Time {
		clock += 5
		return time.Unix(clock, 0)
	}
	m.Collect(context.Background(), types.NewMetricSet("jenkins"))

	require.Len(t, f.timelines, 2)
	assert.Equal(t, int64(1700000005000), f.timelines[0].max)
	assert.Equal(t, int64(1700000010000), f.timelines[1].max)
}

func TestExecutorAndNodeMetrics(t *testing.T) {
	t.Run("derives from computer response", func(t *testing.T) {
		ms := collect(t, &fakeFetcher{docs: map[string]string{
			"computer": `{
				"totalExecutors": 10,
				"busyExecutors": 4,
				"computer": [
					{"displayName": "master", "offline": false},
					{"displayName": "agent-1", "offline": true},
					{"displayName": "agent-2"},
					{"displayName": "agent-3", "offline": true}
				]
			}`,
		}}, Config{})

		requireMetric(t, ms, "executors.total", 10)
		requireMetric(t, ms, "executors.busy", 4)
		requireMetric(t, ms, "executors.free", 6)
		requireMetric(t, ms, "nodes.total", 4)
		requireMetric(t, ms, "nodes.offline", 2)
		requireMetric(t, ms, "nodes.online", 2)
	})

	t.Run("free executors are not clamped", func(t *testing.T) {
		ms := collect(t, &fakeFetcher{docs: map[string]string{
			"computer": `{"totalExecutors": 2, "busyExecutors": 5}`,
		}}, Config{})

		requireMetric(t, ms, "executors.free", -3)
	})

	t.Run("failed query gives zeros", func(t *testing.T) {
		ms := collect(t, &fakeFetcher{}, Config{})

		for _, name := range []string{
			"executors.total", "executors.busy", "executors.free",
			"nodes.total", "nodes.offline", "nodes.online",
		} {
			requireMetric(t, ms, name, 0)
		}
	})

	t.Run("computer is queried once", func(t *testing.T) {
		f := &fakeFetcher{}
		collect(t, f, Config{})

		n := 0
		for _, p := range f.requested {
			if p == "computer" {
				n++
			}
		}
		assert.Equal(t, 1, n)
	})
}

func TestLabelMetrics(t *testing.T) {
	f := &fakeFetcher{docs: map[string]string{
		"label/linux": `{
			"totalExecutors": 8,
			"busyExecutors": 3,
			"nodes": [{"nodeName": "a"}, {"nodeName": "b"}],
			"tiedJobs": [{"name": "x"}, {"name": "y"}, {"name": "z"}]
		}`,
	}}
	ms := collect(t, f, Config{Labels: []string{"windows", "linux"}})

	t.Run("failed label is all zero", func(t *testing.T) {
		for _, name := range []string{
			"labels.windows.jobs.tiedJobs",
			"labels.windows.nodes.total",
			"labels.windows.executors.total",
			"labels.windows.executors.busy",
			"labels.windows.executors.free",
		} {
			requireMetric(t, ms, name, 0)
		}
	})

	t.Run("other label is unaffected", func(t *testing.T) {
		requireMetric(t, ms, "labels.linux.jobs.tiedJobs", 3)
		requireMetric(t, ms, "labels.linux.nodes.total", 2)
		requireMetric(t, ms, "labels.linux.executors.total", 8)
		requireMetric(t, ms, "labels.linux.executors.busy", 3)
		requireMetric(t, ms, "labels.linux.executors.free", 5)
	})

	t.Run("labels are queried in order after the summary endpoints", func(t *testing.T) {
		assert.Equal(t, "queue", f.requested[0])
		assert.True(t, strings.HasPrefix(f.requested[1], "view/All/timeline/data?"))
		assert.True(t, strings.HasPrefix(f.requested[2], "view/All/timeline/data?"))
		assert.Equal(t, []string{"computer", "label/windows", "label/linux"}, f.requested[3:])
	})
}

func TestLabelNamesAreEscaped(t *testing.T) {
	f := &fakeFetcher{docs: map[string]string{
		"label/docker%20&&%20linux": `{"totalExecutors": 1}`,
	}}
	ms := collect(t, f, Config{Labels: []string{"docker && linux"}})

	requireMetric(t, ms, "labels.docker && linux.executors.total", 1)
}

func TestNoLabelsOrViewConfigured(t *testing.T) {
	f := &fakeFetcher{}
	ms := collect(t, f, Config{})

	assert.Len(t, f.requested, 4)
	for _, name := range ms.Names() {
		assert.False(t, strings.HasPrefix(name, "jenkins.labels."), name)
		assert.False(t, strings.HasPrefix(name, "jenkins.jobs."), name)
	}
	assert.Equal(t, 9, ms.Len())
}

func TestJobMetrics(t *testing.T) {
	t.Run("classifies by color", func(t *testing.T) {
		f := &fakeFetcher{docs: map[string]string{
			"view/Main": `{"jobs":[{"color":"blue"},{"color":"red"},{"color":"yellow"},{"color":"grey"}]}`,
		}}
		ms := collect(t, f, Config{JobsView: "Main"})

		requireMetric(t, ms, "jobs.total", 4)
		requireMetric(t, ms, "jobs.ok", 1)
		requireMetric(t, ms, "jobs.fail", 1)
		requireMetric(t, ms, "jobs.warn", 1)
		assert.Equal(t, "view/Main", f.requested[len(f.requested)-1])
	})

	t.Run("building and disabled jobs only count in total", func(t *testing.T) {
		f := &fakeFetcher{docs: map[string]string{
			"view/Release%20Jobs": `{"jobs":[
				{"color":"blue_anime"},
				{"color":"disabled"},
				{"name":"no color"},
				{"color":"blue"},
				{"color":"blue"}
			]}`,
		}}
		ms := collect(t, f, Config{JobsView: "Release Jobs"})

		requireMetric(t, ms, "jobs.total", 5)
		requireMetric(t, ms, "jobs.ok", 2)
		requireMetric(t, ms, "jobs.fail", 0)
		requireMetric(t, ms, "jobs.warn", 0)
	})

	t.Run("failed query gives zeros", func(t *testing.T) {
		ms := collect(t, &fakeFetcher{}, Config{JobsView: "Main"})

		requireMetric(t, ms, "jobs.total", 0)
		requireMetric(t, ms, "jobs.ok", 0)
		requireMetric(t, ms, "jobs.fail", 0)
		requireMetric(t, ms, "jobs.warn", 0)
	})
}
