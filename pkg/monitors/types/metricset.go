package types

import (
	"strings"
	"time"

	"github.com/signalfx/golib/v3/datapoint"
)

// MetricSet holds the gauges gathered during one pass, keyed by their full,
// prefixed name.  A later Add for the same name replaces the earlier value
// but keeps its position, so batches come out in a stable order.
type MetricSet struct {
	prefix string
	names  []string
	dps    map[string]*datapoint.Datapoint
}

// NewMetricSet makes an empty set whose names are all put under prefix.
// Trailing dots on the prefix are dropped.
func NewMetricSet(prefix string) *MetricSet {
	return &MetricSet{
		prefix: strings.TrimRight(prefix, "."),
		dps:    make(map[string]*datapoint.Datapoint),
	}
}

// Prefix is the namespace every metric name starts with
func (ms *MetricSet) Prefix() string {
	return ms.prefix
}

// FullName is the name key would be stored under
func (ms *MetricSet) FullName(key string) string {
	if ms.prefix == "" {
		return key
	}
	return ms.prefix + "." + key
}

// Add stores value as a gauge under "{prefix}.{key}"
func (ms *MetricSet) Add(key string, value int64) {
	name := ms.FullName(key)
	if _, ok := ms.dps[name]; !ok {
		ms.names = append(ms.names, name)
	}
	ms.dps[name] = datapoint.New(name, nil, datapoint.NewIntValue(value), datapoint.Gauge, time.Time{})
}

// Len is the number of distinct metrics in the set
func (ms *MetricSet) Len() int {
	return len(ms.names)
}

// Names returns the full metric names in the order they were first added
func (ms *MetricSet) Names() []string {
	return append([]string(nil), ms.names...)
}

// Value returns the value stored under the full metric name
func (ms *MetricSet) Value(name string) (int64, bool) {
	dp, ok := ms.dps[name]
	if !ok {
		return 0, false
	}
	if iv, ok := dp.Value.(datapoint.IntValue); ok {
		return iv.Int(), true
	}
	return 0, false
}

// Datapoints returns copies of the datapoints in the set, in order, so that
// whoever sends them can't alter the set.
func (ms *MetricSet) Datapoints() []*datapoint.Datapoint {
	out := make([]*datapoint.Datapoint, 0, len(ms.names))
	for _, name := range ms.names {
		dp := *ms.dps[name]
		out = append(out, &dp)
	}
	return out
}
