package status

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports every registry key under a namespace
// Counters keep their _total suffix; ints and floats that move both ways become gauges
type Collector struct {
	reg   *Registry
	descs [keyCount]*prometheus.Desc
}

// NewCollector builds the descriptors for all keys up front
func NewCollector(reg *Registry, namespace string) *Collector {
	c := &Collector{reg: reg}
	for _, k := range Keys() {
		c.descs[k] = prometheus.NewDesc(prometheus.BuildFQName(namespace, "", k.String()), k.Help(), nil, nil)
	}
	return c
}

// Describe sends the fixed descriptor set
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs {
		ch <- d
	}
}

// Collect snapshots every key
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, k := range Keys() {
		vt := prometheus.GaugeValue
		if k.Kind() == KindCounter {
			vt = prometheus.CounterValue
		}
		ch <- prometheus.MustNewConstMetric(c.descs[k], vt, c.reg.Value(k))
	}
}
