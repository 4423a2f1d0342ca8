package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dep2p/go-kbucket/pkg/interfaces"
)

// 确保实现接口
var (
	_ interfaces.NormalizeReporter = (*Reporter)(nil)
	_ interfaces.NormalizeReporter = NopReporter{}
)

const subsystem = "normalize"

// Reporter 基于 Prometheus 的规范化指标上报器
//
// 所有指标注册到构造时传入的 Registerer，并发安全。
type Reporter struct {
	runs      prometheus.Counter
	failures  *prometheus.CounterVec
	buckets   *prometheus.CounterVec
	borrowed  *prometheus.CounterVec
	draws     prometheus.Counter
	shortfall prometheus.Gauge
	drawsHist prometheus.Histogram
}

// NewReporter 创建上报器并注册指标
//
// reg 为 nil 时注册到 prometheus.DefaultRegisterer。
func NewReporter(namespace string, reg prometheus.Registerer) *Reporter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Reporter{
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "number of successful table normalizations",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "failures_total",
			Help:      "number of failed table normalizations",
		}, []string{"reason"}),
		buckets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "buckets_total",
			Help:      "number of normalized buckets by outcome",
		}, []string{"outcome"}),
		borrowed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "borrowed_records_total",
			Help:      "number of records copied from other buckets",
		}, []string{"source"}),
		draws: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "random_draws_total",
			Help:      "number of random draws consumed by sampling",
		}),
		shortfall: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "shortfall",
			Help:      "missing records below K in the last normalized table",
		}),
		drawsHist: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "draws_per_run",
			Help:      "random draws per normalization",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// ReportNormalize 实现 interfaces.NormalizeReporter
func (r *Reporter) ReportNormalize(stats interfaces.NormalizeStats) {
	r.runs.Inc()
	r.buckets.WithLabelValues("filled").Add(float64(stats.Filled))
	r.buckets.WithLabelValues("passed").Add(float64(stats.PassedThrough))
	r.borrowed.WithLabelValues("previous").Add(float64(stats.BorrowedPrevious))
	r.borrowed.WithLabelValues("next").Add(float64(stats.BorrowedNext))
	r.draws.Add(float64(stats.RandomDraws))
	r.drawsHist.Observe(float64(stats.RandomDraws))
	r.shortfall.Set(float64(stats.Shortfall))
}

// ReportFailure 实现 interfaces.NormalizeReporter
func (r *Reporter) ReportFailure(reason string) {
	r.failures.WithLabelValues(reason).Inc()
}

// NopReporter 丢弃所有指标
type NopReporter struct{}

// ReportNormalize 实现 interfaces.NormalizeReporter
func (NopReporter) ReportNormalize(interfaces.NormalizeStats) {}

// ReportFailure 实现 interfaces.NormalizeReporter
func (NopReporter) ReportFailure(string) {}
