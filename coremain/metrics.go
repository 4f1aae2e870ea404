package coremain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	ops         *prometheus.CounterVec
	rangeErrors prometheus.Counter
	length      *prometheus.GaugeVec
}

func newMetricsReg() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ops_total",
			Help: "The total number of executed script steps",
		}, []string{"op"}),
		rangeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "range_errors_total",
			Help: "The total number of out of range positional removals",
		}),
		length: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "length",
			Help: "Current number of elements of a named list",
		}, []string{"list"}),
	}
	prometheus.WrapRegistererWithPrefix("sllist_", reg).MustRegister(m.ops, m.rangeErrors, m.length)
	return m
}
