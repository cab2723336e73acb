package aggregator

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	startTime prometheus.Gauge
	runTime   prometheus.Gauge

	sourceStatus  *prometheus.CounterVec
	sourceItems   *prometheus.GaugeVec
	fetchDuration *prometheus.HistogramVec
	items         prometheus.Gauge
}

func makeMetrics() metrics {
	return metrics{
		startTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feedmerge_start_time",
			Help: "Aggregation start time",
		}),

		runTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feedmerge_run_duration",
			Help: "Aggregation duration",
		}),

		sourceStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedmerge_source_status",
			Help: "Source processing status by pipeline stage",
		}, []string{"name", "stage", "status"}),

		sourceItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "feedmerge_source_items",
			Help: "Number of items extracted from the source",
		}, []string{"name"}),

		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedmerge_fetch_duration",
			Help:    "Document fetch duration",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"name"}),

		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feedmerge_items",
			Help: "Number of items in the combined output",
		}),
	}
}

type observers struct {
	sourceStatus  *prometheus.CounterVec
	sourceItems   prometheus.Gauge
	fetchDuration prometheus.Observer
}

func (m *metrics) observers(name string) observers {
	return observers{
		sourceStatus:  m.sourceStatus.MustCurryWith(prometheus.Labels{"name": name}),
		sourceItems:   m.sourceItems.WithLabelValues(name),
		fetchDuration: m.fetchDuration.WithLabelValues(name),
	}
}

var _ prometheus.Collector = &metrics{}

func (m *metrics) Describe(descs chan<- *prometheus.Desc) {
	m.startTime.Describe(descs)
	m.runTime.Describe(descs)
	m.sourceStatus.Describe(descs)
	m.sourceItems.Describe(descs)
	m.fetchDuration.Describe(descs)
	m.items.Describe(descs)
}

func (m *metrics) Collect(metrics chan<- prometheus.Metric) {
	m.startTime.Collect(metrics)
	m.runTime.Collect(metrics)
	m.sourceStatus.Collect(metrics)
	m.sourceItems.Collect(metrics)
	m.fetchDuration.Collect(metrics)
	m.items.Collect(metrics)
}
