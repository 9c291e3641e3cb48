// Package metrics exposes session activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"matatumonitor/internal/reports"
)

// Collector owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Collector struct {
	reg *prometheus.Registry

	ActiveReports       prometheus.Gauge
	ReportsSubmitted    *prometheus.CounterVec // type label
	SubmissionsRejected prometheus.Counter
	Votes               *prometheus.CounterVec // vote label: up|down
	VotesRejected       *prometheus.CounterVec // vote label: up|down
	ReportsValidated    prometheus.Counter
	Subscribers         prometheus.GaugeFunc

	HTTPRequests *prometheus.CounterVec // method, status
	HTTPDuration prometheus.Histogram
}

// NewCollector registers the monitor's metrics. subscribers, when non-nil,
// reports the number of connected event subscribers at scrape time.
func NewCollector(subscribers func() int) *Collector {
	reg := prometheus.NewRegistry()

	if subscribers == nil {
		subscribers = func() int { return 0 }
	}

	c := &Collector{
		reg: reg,
		ActiveReports: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matatu_active_reports",
			Help: "Number of reports in the feed.",
		}),
		ReportsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matatu_reports_submitted_total",
			Help: "Total reports accepted, by type.",
		}, []string{"type"}),
		SubmissionsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matatu_submissions_rejected_total",
			Help: "Total drafts rejected by validation.",
		}),
		Votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matatu_votes_total",
			Help: "Total votes counted.",
		}, []string{"vote"}),
		VotesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matatu_votes_rejected_total",
			Help: "Total votes on unknown reports.",
		}, []string{"vote"}),
		ReportsValidated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matatu_reports_validated_total",
			Help: "Total reports promoted to validated.",
		}),
		Subscribers: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "matatu_event_subscribers",
			Help: "Number of connected event stream subscribers.",
		}, func() float64 { return float64(subscribers()) }),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matatu_http_requests_total",
			Help: "Total HTTP requests served.",
		}, []string{"method", "status"}),
		HTTPDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matatu_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
	}

	reg.MustRegister(
		c.ActiveReports, c.ReportsSubmitted, c.SubmissionsRejected,
		c.Votes, c.VotesRejected, c.ReportsValidated, c.Subscribers,
		c.HTTPRequests, c.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create label values so every type shows up at zero.
	for _, k := range reports.Kinds {
		c.ReportsSubmitted.WithLabelValues(string(k))
	}
	for _, v := range []reports.Vote{reports.Upvote, reports.Downvote} {
		c.Votes.WithLabelValues(v.String())
		c.VotesRejected.WithLabelValues(v.String())
	}

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{Registry: c.reg})
}

func (c *Collector) ReportSubmitted(kind reports.Kind) {
	c.ReportsSubmitted.WithLabelValues(string(kind)).Inc()
}

func (c *Collector) SubmissionRejected() { c.SubmissionsRejected.Inc() }

func (c *Collector) Voted(v reports.Vote) { c.Votes.WithLabelValues(v.String()).Inc() }

func (c *Collector) VoteRejected(v reports.Vote) { c.VotesRejected.WithLabelValues(v.String()).Inc() }

func (c *Collector) ReportValidated() { c.ReportsValidated.Inc() }

func (c *Collector) SetActiveReports(n int) { c.ActiveReports.Set(float64(n)) }

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.HTTPDuration.Observe(d.Seconds())
}
